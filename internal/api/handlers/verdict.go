package handlers

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// VerdictDTO вердикт допуска в HTTP представлении
type VerdictDTO struct {
	Admitted           bool      `json:"admitted"`
	Reason             string    `json:"reason,omitempty"` // CLOSED | OVERLAP | SLOT_FULL | TOO_SOON | TOO_FAR
	Note               *string   `json:"note,omitempty"`
	Conflicts          []int64   `json:"conflicts,omitempty"`
	AssignedSlot       *string   `json:"assignedSlot,omitempty"`
	AssignedResourceID *int64    `json:"assignedResourceId,omitempty"`
	PreferenceDropped  bool      `json:"preferenceDropped,omitempty"`
	CheckedAt          time.Time `json:"checkedAt"`
}

// FromDomainVerdict конвертирует вердикт в DTO
func FromDomainVerdict(v *domain.AdmissionVerdict) *VerdictDTO {
	if v == nil {
		return nil
	}

	dto := &VerdictDTO{
		Admitted:           v.Admitted,
		Reason:             string(v.Reason),
		Note:               v.Note,
		Conflicts:          v.Conflicts,
		AssignedResourceID: v.AssignedResourceID,
		PreferenceDropped:  v.PreferenceDropped,
		CheckedAt:          v.CheckedAt,
	}
	if v.AssignedSlot != nil {
		slot := v.AssignedSlot.String()
		dto.AssignedSlot = &slot
	}
	return dto
}

// ToDomain конвертирует DTO, присланный клиентом, обратно в вердикт
func (v *VerdictDTO) ToDomain() (*domain.AdmissionVerdict, error) {
	if v == nil {
		return nil, nil
	}

	verdict := &domain.AdmissionVerdict{
		Admitted:           v.Admitted,
		Reason:             domain.RejectionReason(v.Reason),
		Note:               v.Note,
		Conflicts:          v.Conflicts,
		AssignedResourceID: v.AssignedResourceID,
		PreferenceDropped:  v.PreferenceDropped,
		CheckedAt:          v.CheckedAt,
	}
	if v.AssignedSlot != nil {
		slot, err := types.NewTimeStringFromString(*v.AssignedSlot)
		if err != nil {
			return nil, err
		}
		verdict.AssignedSlot = &slot
	}
	return verdict, nil
}
