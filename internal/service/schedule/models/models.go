package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модели

// UpdateScheduleRequest запрос на обновление настроек пула
// Все поля опциональны - обновляются только переданные значения.
// WeeklyHours и Catalog заменяются целиком, если переданы.
type UpdateScheduleRequest struct {
	UserID             int64          `json:"-"`
	BufferMinutes      *int           `json:"bufferMinutes,omitempty"`
	PoolSize           *int           `json:"poolSize,omitempty"`
	CapacityMode       *string        `json:"capacityMode,omitempty"` // "catalog" | "pool"
	MinLeadTimeMinutes *int           `json:"minLeadTimeMinutes,omitempty"`
	AdvanceBookingDays *int           `json:"advanceBookingDays,omitempty"` // 0 = без ограничений
	Timezone           *string        `json:"timezone,omitempty"`           // IANA, "Europe/Moscow"
	WeeklyHours        []DayHours     `json:"weeklyHours,omitempty"`
	Catalog            []CatalogEntry `json:"catalog,omitempty"`
}

// HolidayRequest запрос на добавление выходного дня
type HolidayRequest struct {
	UserID int64     `json:"-"`
	Date   time.Time `json:"-"`
	Note   *string   `json:"note,omitempty"`
}

// DayHours рабочие часы дня недели
type DayHours struct {
	Weekday   int     `json:"weekday"` // 0 = воскресенье .. 6 = суббота
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00"
	CloseTime *string `json:"closeTime,omitempty"` // "18:00"
}

// CatalogEntry слот каталога
type CatalogEntry struct {
	Time     string `json:"time"` // "09:00"
	Capacity int    `json:"capacity"`
}

// Response модели

// ScheduleResponse конфигурация пула
type ScheduleResponse struct {
	PoolID             int64             `json:"poolId"`
	IsDefault          bool              `json:"isDefault"`
	BufferMinutes      int               `json:"bufferMinutes"`
	PoolSize           int               `json:"poolSize"`
	CapacityMode       string            `json:"capacityMode"`
	MinLeadTimeMinutes int               `json:"minLeadTimeMinutes"`
	AdvanceBookingDays int               `json:"advanceBookingDays"`
	Timezone           string            `json:"timezone"`
	WeeklyHours        []DayHours        `json:"weeklyHours"`
	Holidays           []HolidayResponse `json:"holidays"`
	Catalog            []CatalogEntry    `json:"catalog"`
	UpdatedAt          *time.Time        `json:"updatedAt,omitempty"`
}

// HolidayResponse выходной день
type HolidayResponse struct {
	Date string  `json:"date"` // "2025-12-31"
	Note *string `json:"note,omitempty"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SchedulingConfig, isDefault bool) *ScheduleResponse {
	if c == nil {
		return nil
	}

	resp := &ScheduleResponse{
		PoolID:             c.PoolID,
		IsDefault:          isDefault,
		BufferMinutes:      c.BufferMinutes,
		PoolSize:           c.PoolSize,
		CapacityMode:       string(c.CapacityMode),
		MinLeadTimeMinutes: c.MinLeadTimeMinutes,
		AdvanceBookingDays: c.AdvanceBookingDays,
		Timezone:           c.Timezone,
		WeeklyHours:        make([]DayHours, 0, 7),
		Holidays:           make([]HolidayResponse, 0, len(c.Calendar.Holidays)),
		Catalog:            make([]CatalogEntry, 0, len(c.Catalog)),
	}

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day, ok := c.Calendar.Weekly[weekday]
		hours := DayHours{Weekday: int(weekday), IsOpen: ok && day.IsOpen}
		if hours.IsOpen {
			open, closeTime := day.OpenTime.String(), day.CloseTime.String()
			hours.OpenTime = &open
			hours.CloseTime = &closeTime
		}
		resp.WeeklyHours = append(resp.WeeklyHours, hours)
	}

	for _, h := range c.Calendar.Holidays {
		resp.Holidays = append(resp.Holidays, HolidayResponse{
			Date: h.Date.Format(domain.DateFormat),
			Note: h.Note,
		})
	}
	sort.Slice(resp.Holidays, func(i, j int) bool {
		return resp.Holidays[i].Date < resp.Holidays[j].Date
	})

	for _, slot := range c.Catalog.Sorted() {
		resp.Catalog = append(resp.Catalog, CatalogEntry{
			Time:     slot.TimeOfDay.String(),
			Capacity: slot.Capacity,
		})
	}

	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// ApplyToSettings накладывает переданные поля на текущие настройки
func (r *UpdateScheduleRequest) ApplyToSettings(current domain.SchedulingSettings) domain.SchedulingSettings {
	if r.BufferMinutes != nil {
		current.BufferMinutes = *r.BufferMinutes
	}
	if r.PoolSize != nil {
		current.PoolSize = *r.PoolSize
	}
	if r.CapacityMode != nil {
		current.CapacityMode = domain.CapacityMode(*r.CapacityMode)
	}
	if r.MinLeadTimeMinutes != nil {
		current.MinLeadTimeMinutes = *r.MinLeadTimeMinutes
	}
	if r.AdvanceBookingDays != nil {
		current.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.Timezone != nil {
		current.Timezone = *r.Timezone
	}
	return current
}

// ToDomainWeekly конвертирует рабочие часы в domain модель
func ToDomainWeekly(days []DayHours) (domain.WeeklySchedule, error) {
	weekly := make(domain.WeeklySchedule, len(days))

	for _, d := range days {
		if d.Weekday < int(time.Sunday) || d.Weekday > int(time.Saturday) {
			return nil, fmt.Errorf("weekday %d is out of range 0..6", d.Weekday)
		}
		weekday := time.Weekday(d.Weekday)
		if _, exists := weekly[weekday]; exists {
			return nil, fmt.Errorf("weekday %d is listed twice", d.Weekday)
		}

		if !d.IsOpen {
			weekly[weekday] = domain.DaySchedule{IsOpen: false}
			continue
		}

		if d.OpenTime == nil || d.CloseTime == nil {
			return nil, fmt.Errorf("weekday %d is open but has no hours", d.Weekday)
		}
		open, err := types.NewTimeStringFromString(*d.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("weekday %d open time: %w", d.Weekday, err)
		}
		closeTime, err := types.NewTimeStringFromString(*d.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("weekday %d close time: %w", d.Weekday, err)
		}
		if !open.IsBefore(closeTime) {
			return nil, fmt.Errorf("weekday %d opens at %s but closes at %s", d.Weekday, open, closeTime)
		}

		weekly[weekday] = domain.DaySchedule{IsOpen: true, OpenTime: open, CloseTime: closeTime}
	}

	return weekly, nil
}

// ToDomainCatalog конвертирует каталог слотов в domain модель
func ToDomainCatalog(entries []CatalogEntry) (domain.SlotCatalog, error) {
	if len(entries) > domain.MaxCatalogSlots {
		return nil, fmt.Errorf("catalog has %d slots, max %d", len(entries), domain.MaxCatalogSlots)
	}

	catalog := make(domain.SlotCatalog, 0, len(entries))
	seen := make(map[types.TimeString]struct{}, len(entries))

	for _, e := range entries {
		t, err := types.NewTimeStringFromString(e.Time)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", e.Time, err)
		}
		if _, exists := seen[t]; exists {
			return nil, fmt.Errorf("slot %s is listed twice", t)
		}
		if e.Capacity < domain.MinSlotCapacity || e.Capacity > domain.MaxSlotCapacity {
			return nil, fmt.Errorf("slot %s capacity must be between %d and %d", t, domain.MinSlotCapacity, domain.MaxSlotCapacity)
		}
		seen[t] = struct{}{}
		catalog = append(catalog, domain.CatalogSlot{TimeOfDay: t, Capacity: e.Capacity})
	}

	return catalog.Sorted(), nil
}
