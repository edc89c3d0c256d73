package check_admission

import (
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	checkAdmission "github.com/m04kA/SMC-ReservationService/internal/usecase/check_admission"
)

// CheckAdmissionRequest HTTP request model
type CheckAdmissionRequest struct {
	handlers.AdmissionBody
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAdmissionRequest) ToUseCaseRequest(poolID int64) (*checkAdmission.Request, error) {
	parsed, err := r.Parse()
	if err != nil {
		return nil, err
	}

	return &checkAdmission.Request{
		PoolID:          poolID,
		Style:           parsed.Style,
		ResourceID:      parsed.ResourceID,
		StartAt:         parsed.StartAt,
		EndAt:           parsed.EndAt,
		Date:            parsed.Date,
		SlotTime:        parsed.SlotTime,
		DurationMinutes: parsed.DurationMinutes,
		BufferMinutes:   parsed.BufferMinutes,
	}, nil
}
