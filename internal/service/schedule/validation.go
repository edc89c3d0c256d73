package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateSettings проверяет скалярные настройки пула
func validateSettings(s domain.SchedulingSettings) error {
	if s.BufferMinutes < domain.MinBufferMinutes || s.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer minutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if s.PoolSize < domain.MinPoolSize || s.PoolSize > domain.MaxPoolSize {
		return fmt.Errorf("%w: pool size must be between %d and %d",
			ErrInvalidInput, domain.MinPoolSize, domain.MaxPoolSize)
	}

	if !s.CapacityMode.IsValid() {
		return fmt.Errorf("%w: capacity mode must be %q or %q",
			ErrInvalidInput, domain.CapacityCatalog, domain.CapacityPool)
	}

	if s.MinLeadTimeMinutes < domain.MinLeadTimeMinutes || s.MinLeadTimeMinutes > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: min lead time must be between %d and %d minutes",
			ErrInvalidInput, domain.MinLeadTimeMinutes, domain.MaxLeadTimeMinutes)
	}

	if s.AdvanceBookingDays < domain.MinAdvanceBookingDays || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if s.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, s.Timezone)
	}

	return nil
}

// validateHolidayNote проверяет длину комментария к выходному
func validateHolidayNote(note *string) error {
	if note != nil && len(*note) > domain.MaxHolidayNoteLength {
		return fmt.Errorf("%w: holiday note exceeds %d characters", ErrInvalidInput, domain.MaxHolidayNoteLength)
	}
	return nil
}
