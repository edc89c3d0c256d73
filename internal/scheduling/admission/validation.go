package admission

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ValidateRequest проверяет форму запроса до любых вычислений
func ValidateRequest(req *domain.AdmissionRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.PoolID <= 0 {
		return fmt.Errorf("%w: poolID must be positive", ErrInvalidInput)
	}

	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.BufferMinutes != nil && (*req.BufferMinutes < domain.MinBufferMinutes || *req.BufferMinutes > domain.MaxBufferMinutes) {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	switch req.Style {
	case domain.StyleInterval:
		return validateInterval(req)
	case domain.StyleSlot:
		return validateSlot(req)
	default:
		return fmt.Errorf("%w: unknown reservation style %q", ErrInvalidInput, req.Style)
	}
}

func validateInterval(req *domain.AdmissionRequest) error {
	if req.ResourceID == nil {
		return fmt.Errorf("%w: resourceID is required for interval reservations", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	if req.EndAt.Sub(req.StartAt) > domain.MaxIntervalDays*24*time.Hour {
		return fmt.Errorf("%w: interval must not exceed %d days", ErrInvalidInput, domain.MaxIntervalDays)
	}

	return nil
}

func validateSlot(req *domain.AdmissionRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.SlotTime.Validate(); err != nil {
		return fmt.Errorf("%w: slot time: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return nil
}
