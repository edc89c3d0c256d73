package schedule

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда выходной не найден
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
