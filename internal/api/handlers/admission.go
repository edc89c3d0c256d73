package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	// ErrInvalidStyle возвращается для неизвестного стиля бронирования
	ErrInvalidStyle = errors.New("style must be \"interval\" or \"slot\"")

	// ErrMissingField возвращается, когда не передано обязательное поле
	ErrMissingField = errors.New("required field is missing")
)

// AdmissionBody тело запроса кандидата на бронирование
// Для интервала обязательны resourceId, startAt и endAt (RFC 3339).
// Для слота обязательны date (YYYY-MM-DD), slotTime (HH:MM) и durationMinutes.
type AdmissionBody struct {
	Style           string     `json:"style"`
	ResourceID      *int64     `json:"resourceId,omitempty"`
	StartAt         *time.Time `json:"startAt,omitempty"`
	EndAt           *time.Time `json:"endAt,omitempty"`
	Date            string     `json:"date,omitempty"`
	SlotTime        string     `json:"slotTime,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty"`
	BufferMinutes   *int       `json:"bufferMinutes,omitempty"`
}

// ParsedAdmission разобранное тело запроса
type ParsedAdmission struct {
	Style           domain.ReservationStyle
	ResourceID      *int64
	StartAt         time.Time
	EndAt           time.Time
	Date            time.Time
	SlotTime        types.TimeString
	DurationMinutes int
	BufferMinutes   *int
}

// Parse проверяет формат полей; бизнес-валидация остаётся за use case
func (b *AdmissionBody) Parse() (*ParsedAdmission, error) {
	style := domain.ReservationStyle(b.Style)
	if !style.IsValid() {
		return nil, ErrInvalidStyle
	}

	parsed := &ParsedAdmission{
		Style:           style,
		ResourceID:      b.ResourceID,
		DurationMinutes: b.DurationMinutes,
		BufferMinutes:   b.BufferMinutes,
	}

	if style == domain.StyleInterval {
		if b.StartAt == nil || b.EndAt == nil {
			return nil, fmt.Errorf("%w: startAt and endAt", ErrMissingField)
		}
		parsed.StartAt = *b.StartAt
		parsed.EndAt = *b.EndAt
		return parsed, nil
	}

	if b.Date == "" || b.SlotTime == "" {
		return nil, fmt.Errorf("%w: date and slotTime", ErrMissingField)
	}

	date, err := time.Parse(domain.DateFormat, b.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	slotTime, err := types.NewTimeStringFromString(b.SlotTime)
	if err != nil {
		return nil, fmt.Errorf("slotTime: %w", err)
	}

	parsed.Date = date
	parsed.SlotTime = slotTime
	return parsed, nil
}
