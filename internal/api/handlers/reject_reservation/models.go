package reject_reservation

import (
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// RejectReservationRequest HTTP request model
// Тело запроса опционально
type RejectReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RejectReservationRequest) ToServiceRequest(userID int64) *models.CancelReservationRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelReservationRequest{
		UserID:             userID,
		CancellationReason: reason,
	}
}
