package commit_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_reservation: invalid input data")

	// ErrStoreUnavailable возвращается при ошибке хранилища (в том числе после исчерпания повторов)
	ErrStoreUnavailable = errors.New("commit_reservation: store unavailable")

	// errRejected откатывает транзакцию, когда свежий вердикт отклоняет запрос
	errRejected = errors.New("commit_reservation: rejected")
)
