package admission

import "errors"

var (
	// ErrInvalidInput возвращается для некорректного запроса (жёсткая ошибка, не вердикт)
	ErrInvalidInput = errors.New("admission: invalid input")

	// ErrUnknownSlot возвращается, когда время слота отсутствует в каталоге
	ErrUnknownSlot = errors.New("admission: slot is not in the catalog")

	// ErrMissingConfig возвращается, когда конфигурация пула не передана
	ErrMissingConfig = errors.New("admission: scheduling config is required")
)
