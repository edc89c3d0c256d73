package commit_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	commitReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/commit_reservation"
)

// CommitReservationRequest HTTP request model
type CommitReservationRequest struct {
	handlers.AdmissionBody
	Notes    *string              `json:"notes,omitempty"`
	Advisory *handlers.VerdictDTO `json:"advisory,omitempty"` // вердикт предварительной проверки
}

// CommitReservationResponse HTTP response model
type CommitReservationResponse struct {
	Committed   bool                        `json:"committed"`
	Reservation *models.ReservationResponse `json:"reservation,omitempty"`
	Verdict     *handlers.VerdictDTO        `json:"verdict"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CommitReservationRequest) ToUseCaseRequest(poolID, requesterID int64) (*commitReservation.Request, error) {
	parsed, err := r.Parse()
	if err != nil {
		return nil, err
	}

	advisory, err := r.Advisory.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("advisory: %w", err)
	}

	return &commitReservation.Request{
		PoolID:          poolID,
		RequesterID:     requesterID,
		Style:           parsed.Style,
		ResourceID:      parsed.ResourceID,
		StartAt:         parsed.StartAt,
		EndAt:           parsed.EndAt,
		Date:            parsed.Date,
		SlotTime:        parsed.SlotTime,
		DurationMinutes: parsed.DurationMinutes,
		BufferMinutes:   parsed.BufferMinutes,
		Notes:           r.Notes,
		Advisory:        advisory,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitReservation.Response) *CommitReservationResponse {
	return &CommitReservationResponse{
		Committed:   resp.Committed,
		Reservation: models.FromDomainReservation(resp.Reservation),
		Verdict:     handlers.FromDomainVerdict(resp.Verdict),
	}
}
