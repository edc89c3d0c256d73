package check_admission

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на проверку допуска
type Request struct {
	PoolID     int64
	Style      domain.ReservationStyle
	ResourceID *int64 // обязательна для интервала, предпочтительная единица для слота

	// Интервал
	StartAt time.Time
	EndAt   time.Time

	// Слот
	Date            time.Time
	SlotTime        types.TimeString
	DurationMinutes int

	BufferMinutes *int // переопределяет буфер пула
}

// Response модель ответа с вердиктом
type Response struct {
	Verdict *domain.AdmissionVerdict
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
