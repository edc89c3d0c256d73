package check_admission

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_admission: invalid input data")

	// ErrStoreUnavailable возвращается, когда не удалось прочитать конфигурацию или бронирования
	ErrStoreUnavailable = errors.New("check_admission: store unavailable")
)
