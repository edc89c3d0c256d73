package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_OccupiedWindow(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)

	slot := &Reservation{
		Style:           StyleSlot,
		Date:            time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		TimeOfDay:       "09:00",
		DurationMinutes: 50,
	}
	start, end := slot.OccupiedWindow(10, loc)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 6, 3, 10, 0, 0, 0, loc), end)

	interval := &Reservation{
		Style:   StyleInterval,
		StartAt: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	start, end = interval.OccupiedWindow(30, loc)
	assert.Equal(t, interval.StartAt, start)
	assert.Equal(t, interval.EndAt, end)
}

func TestReservation_Lifecycle(t *testing.T) {
	r := &Reservation{Status: StatusPending}
	assert.True(t, r.CanBeConfirmed())
	assert.True(t, r.CanBeCancelled())
	assert.True(t, r.IsBlocking(DefaultBlockingStatuses))

	r.Status = StatusConfirmed
	assert.False(t, r.CanBeConfirmed())
	assert.True(t, r.CanBeCancelled())

	r.Status = StatusCancelled
	assert.False(t, r.CanBeCancelled())
	assert.False(t, r.IsActive())
	assert.False(t, r.IsBlocking(DefaultBlockingStatuses))
}

func TestSchedulingConfig_SlotCapacity(t *testing.T) {
	cfg := &SchedulingConfig{CapacityMode: CapacityCatalog, PoolSize: 4}
	assert.Equal(t, 2, cfg.SlotCapacity(CatalogSlot{TimeOfDay: "09:00", Capacity: 2}))
	assert.Equal(t, 0, cfg.SlotCapacity(CatalogSlot{TimeOfDay: "09:30", Capacity: 0}))

	cfg.CapacityMode = CapacityPool
	assert.Equal(t, 4, cfg.SlotCapacity(CatalogSlot{TimeOfDay: "09:00", Capacity: 2}))
	assert.Equal(t, 0, cfg.SlotCapacity(CatalogSlot{TimeOfDay: "09:30", Capacity: 0}))
}

func TestSchedulingConfig_Defaults(t *testing.T) {
	cfg := &SchedulingConfig{Timezone: "Nowhere/Unknown"}
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, DefaultBlockingStatuses, cfg.Blocking())
	assert.False(t, cfg.HasAdvanceBookingLimit())
}

func TestSlotCatalog_SortedAndFind(t *testing.T) {
	catalog := SlotCatalog{{TimeOfDay: "10:00", Capacity: 1}, {TimeOfDay: "09:00", Capacity: 2}}

	sorted := catalog.Sorted()
	assert.Equal(t, "09:00", sorted[0].TimeOfDay.String())
	assert.Equal(t, "10:00", catalog[0].TimeOfDay.String(), "original order untouched")

	slot, ok := catalog.Find("09:00")
	assert.True(t, ok)
	assert.Equal(t, 2, slot.Capacity)

	_, ok = catalog.Find("11:00")
	assert.False(t, ok)
}

func TestAdmissionRequest_CandidateBuffer(t *testing.T) {
	req := &AdmissionRequest{}
	assert.Equal(t, 30, req.CandidateBuffer(30))

	shorter := 0
	req.BufferMinutes = &shorter
	assert.Equal(t, 30, req.CandidateBuffer(30))

	longer := 45
	req.BufferMinutes = &longer
	assert.Equal(t, 45, req.CandidateBuffer(30))
}

func TestAdmissionVerdict_OutcomeLabel(t *testing.T) {
	assert.Equal(t, VerdictAdmitted, (&AdmissionVerdict{Admitted: true}).OutcomeLabel())
	assert.Equal(t, "SLOT_FULL", (&AdmissionVerdict{Reason: ReasonSlotFull}).OutcomeLabel())
}
