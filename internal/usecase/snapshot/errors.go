package snapshot

import "errors"

var (
	// ErrLoadConfig возвращается при ошибке чтения конфигурации пула
	ErrLoadConfig = errors.New("snapshot: failed to load scheduling config")

	// ErrLoadReservations возвращается при ошибке чтения бронирований
	ErrLoadReservations = errors.New("snapshot: failed to load reservations")
)
