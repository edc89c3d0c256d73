package commit_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на запись бронирования
type Request struct {
	PoolID      int64
	RequesterID int64
	Style       domain.ReservationStyle
	ResourceID  *int64

	// Интервал
	StartAt time.Time
	EndAt   time.Time

	// Слот
	Date            time.Time
	SlotTime        types.TimeString
	DurationMinutes int

	BufferMinutes *int
	Notes         *string

	// Advisory вердикт, который видел клиент (опционально)
	Advisory *domain.AdmissionVerdict
}

// Response модель ответа
// При Committed=false Reservation пустой, а Verdict содержит причину отказа
type Response struct {
	Committed   bool
	Reservation *domain.Reservation
	Verdict     *domain.AdmissionVerdict
}

// ToAdmissionRequest преобразует запрос в запрос движка допуска
func (r *Request) ToAdmissionRequest() *domain.AdmissionRequest {
	return &domain.AdmissionRequest{
		Style:           r.Style,
		PoolID:          r.PoolID,
		ResourceID:      r.ResourceID,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		Date:            r.Date,
		SlotTime:        r.SlotTime,
		DurationMinutes: r.DurationMinutes,
		BufferMinutes:   r.BufferMinutes,
	}
}
