package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// DaySchedule business hours of one weekday
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// WeeklySchedule maps weekday (0=Sunday .. 6=Saturday) to business hours.
// A missing weekday is closed.
type WeeklySchedule map[time.Weekday]DaySchedule

// Holiday a specific closed date
type Holiday struct {
	Date time.Time
	Note *string
}

// BusinessCalendar weekly template plus holidays
type BusinessCalendar struct {
	Weekly   WeeklySchedule
	Holidays []Holiday
}

// CatalogSlot a named start time with its capacity.
// Capacity 0 disables the slot.
type CatalogSlot struct {
	TimeOfDay types.TimeString
	Capacity  int
}

// SlotCatalog ordered list of slots, unique by TimeOfDay, same for every date
type SlotCatalog []CatalogSlot

// Find returns the catalog slot starting at t
func (c SlotCatalog) Find(t types.TimeString) (CatalogSlot, bool) {
	for _, s := range c {
		if s.TimeOfDay == t {
			return s, true
		}
	}
	return CatalogSlot{}, false
}

// Sorted returns a copy ordered by time of day
func (c SlotCatalog) Sorted() SlotCatalog {
	out := make(SlotCatalog, len(c))
	copy(out, c)
	sort.Slice(out, func(i, j int) bool {
		return out[i].TimeOfDay.IsBefore(out[j].TimeOfDay)
	})
	return out
}

// CapacityMode selects what bounds a slot
type CapacityMode string

const (
	// CapacityCatalog each slot is bounded by its catalog capacity
	CapacityCatalog CapacityMode = "catalog"
	// CapacityPool units are interchangeable and every slot is bounded by the pool size
	CapacityPool CapacityMode = "pool"
)

// IsValid returns true for a known capacity mode
func (m CapacityMode) IsValid() bool {
	return m == CapacityCatalog || m == CapacityPool
}

// SchedulingConfig everything the admission engine needs to know about a pool.
// It is loaded once per check and passed explicitly into every engine call.
type SchedulingConfig struct {
	PoolID             int64
	Calendar           BusinessCalendar
	Catalog            SlotCatalog
	BufferMinutes      int
	PoolSize           int
	CapacityMode       CapacityMode
	MinLeadTimeMinutes int
	AdvanceBookingDays int // 0 = unlimited
	Timezone           string
	BlockingStatuses   []ReservationStatus
	UpdatedAt          time.Time
}

// Location returns the pool time zone, UTC when unset or unknown
func (c *SchedulingConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Blocking returns the statuses that block admission
func (c *SchedulingConfig) Blocking() []ReservationStatus {
	if len(c.BlockingStatuses) == 0 {
		return DefaultBlockingStatuses
	}
	return c.BlockingStatuses
}

// SlotCapacity returns the effective capacity of a catalog slot.
// A slot disabled in the catalog (capacity 0) stays disabled in pool mode.
func (c *SchedulingConfig) SlotCapacity(slot CatalogSlot) int {
	if slot.Capacity <= 0 {
		return 0
	}
	if c.CapacityMode == CapacityPool {
		if c.PoolSize < 0 {
			return 0
		}
		return c.PoolSize
	}
	return slot.Capacity
}

// HasAdvanceBookingLimit returns true if there's a limit on how far ahead reservations can be made
func (c *SchedulingConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// SchedulingSettings scalar settings of a pool
type SchedulingSettings struct {
	BufferMinutes      int
	PoolSize           int
	CapacityMode       CapacityMode
	MinLeadTimeMinutes int
	AdvanceBookingDays int
	Timezone           string
}

// DefaultSchedulingSettings returns the built-in settings for a pool with no stored ones
func DefaultSchedulingSettings() SchedulingSettings {
	return SchedulingSettings{
		BufferMinutes:      DefaultBufferMinutes,
		PoolSize:           DefaultPoolSize,
		CapacityMode:       DefaultCapacityMode,
		MinLeadTimeMinutes: DefaultMinLeadTimeMinutes,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
		Timezone:           DefaultTimezone,
	}
}

// NewSchedulingConfig builds a config with the given settings, an empty calendar and catalog.
// A pool without weekly hours is closed every day.
func NewSchedulingConfig(poolID int64, settings SchedulingSettings) *SchedulingConfig {
	cfg := &SchedulingConfig{
		PoolID:   poolID,
		Calendar: BusinessCalendar{Weekly: WeeklySchedule{}, Holidays: []Holiday{}},
		Catalog:  SlotCatalog{},
	}
	cfg.ApplySettings(settings)
	return cfg
}

// Settings returns the scalar settings of the config
func (c *SchedulingConfig) Settings() SchedulingSettings {
	return SchedulingSettings{
		BufferMinutes:      c.BufferMinutes,
		PoolSize:           c.PoolSize,
		CapacityMode:       c.CapacityMode,
		MinLeadTimeMinutes: c.MinLeadTimeMinutes,
		AdvanceBookingDays: c.AdvanceBookingDays,
		Timezone:           c.Timezone,
	}
}

// ApplySettings overwrites the scalar settings of the config
func (c *SchedulingConfig) ApplySettings(s SchedulingSettings) {
	c.BufferMinutes = s.BufferMinutes
	c.PoolSize = s.PoolSize
	c.CapacityMode = s.CapacityMode
	c.MinLeadTimeMinutes = s.MinLeadTimeMinutes
	c.AdvanceBookingDays = s.AdvanceBookingDays
	c.Timezone = s.Timezone
}
