package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	PoolID int64
	Date   time.Time // дата без времени

	// DurationMinutes длительность будущего бронирования (опционально)
	// Если задана, слот недоступен и тогда, когда занятость перейдёт в заполненный слот
	DurationMinutes int
}

// Response модель ответа со слотами каталога
type Response struct {
	Date         time.Time
	PoolID       int64
	Open         bool
	ClosedReason domain.ClosedReason
	HolidayNote  *string
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	Slots        []Slot
}

// Slot состояние слота каталога на дату
type Slot struct {
	StartTime      types.TimeString
	Capacity       int
	BookedCount    int
	SpillCount     int
	AvailableSpots int
	OccupancyRate  float64
	Offerable      bool
}
