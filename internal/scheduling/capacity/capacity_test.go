package capacity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// 2024-06-03 - понедельник
var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func mondayConfig(catalog domain.SlotCatalog) *domain.SchedulingConfig {
	return &domain.SchedulingConfig{
		PoolID: 1,
		Calendar: domain.BusinessCalendar{
			Weekly: domain.WeeklySchedule{
				time.Monday: {IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
			},
		},
		Catalog:      catalog,
		CapacityMode: domain.CapacityCatalog,
		PoolSize:     3,
	}
}

func slotReservation(id int64, t types.TimeString, duration int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		Style:           domain.StyleSlot,
		PoolID:          1,
		Date:            monday,
		TimeOfDay:       t,
		DurationMinutes: duration,
		Status:          status,
	}
}

func mustSlot(t *testing.T, b *Board, ts types.TimeString) *domain.SlotState {
	t.Helper()
	s, ok := b.Slot(ts)
	require.True(t, ok, "slot %s not in board", ts)
	return s
}

// Scenario A: 09:00 вместимостью 2 и две подтверждённые записи
func TestComputeSlotState_ScenarioA(t *testing.T) {
	cfg := mondayConfig(domain.SlotCatalog{{TimeOfDay: "09:00", Capacity: 2}})
	existing := []*domain.Reservation{
		slotReservation(1, "09:00", 30, domain.StatusConfirmed),
		slotReservation(2, "09:00", 30, domain.StatusConfirmed),
	}

	board, err := ComputeSlotState(cfg, monday, existing, 0)
	require.NoError(t, err)

	s := mustSlot(t, board, "09:00")
	assert.Equal(t, 2, s.BookedCount)
	assert.Equal(t, 0, s.SpillCount)
	assert.True(t, s.IsFull)
	assert.False(t, s.Offerable)
}

// Scenario C: 09:00 длительностью 50 и буфером 10 блокирует 09:30, но не 10:00
func TestComputeSlotState_ScenarioC(t *testing.T) {
	cfg := mondayConfig(domain.SlotCatalog{
		{TimeOfDay: "10:00", Capacity: 1},
		{TimeOfDay: "09:00", Capacity: 1},
		{TimeOfDay: "09:30", Capacity: 1},
	})
	existing := []*domain.Reservation{
		slotReservation(1, "09:00", 50, domain.StatusConfirmed),
	}

	board, err := ComputeSlotState(cfg, monday, existing, 10)
	require.NoError(t, err)

	// порядок каталога восстановлен
	require.Len(t, board.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), board.Slots[0].TimeOfDay)

	s900 := mustSlot(t, board, "09:00")
	assert.Equal(t, 1, s900.BookedCount)
	assert.Equal(t, 0, s900.SpillCount)
	assert.True(t, s900.IsFull)

	s930 := mustSlot(t, board, "09:30")
	assert.Equal(t, 0, s930.BookedCount)
	assert.Equal(t, 1, s930.SpillCount)
	assert.True(t, s930.IsFull)

	s1000 := mustSlot(t, board, "10:00")
	assert.Equal(t, 0, s1000.Occupied())
	assert.False(t, s1000.IsFull)
	assert.True(t, s1000.Offerable)

	assert.Equal(t, []domain.SlotState{*s1000}, board.Offerable())
}

func TestComputeSlotState_IgnoresNonBlockingAndOtherDates(t *testing.T) {
	cfg := mondayConfig(domain.SlotCatalog{{TimeOfDay: "09:00", Capacity: 1}})

	otherDay := slotReservation(2, "09:00", 30, domain.StatusConfirmed)
	otherDay.Date = monday.AddDate(0, 0, 7)
	otherPool := slotReservation(3, "09:00", 30, domain.StatusConfirmed)
	otherPool.PoolID = 2
	interval := &domain.Reservation{ID: 4, Style: domain.StyleInterval, PoolID: 1, Status: domain.StatusConfirmed}

	existing := []*domain.Reservation{
		slotReservation(1, "09:00", 30, domain.StatusCancelled),
		otherDay,
		otherPool,
		interval,
	}

	board, err := ComputeSlotState(cfg, monday, existing, 0)
	require.NoError(t, err)

	s := mustSlot(t, board, "09:00")
	assert.Equal(t, 0, s.Occupied())
	assert.True(t, s.Offerable)
}

func TestComputeSlotState_EdgeCases(t *testing.T) {
	t.Run("capacity zero is never offerable", func(t *testing.T) {
		cfg := mondayConfig(domain.SlotCatalog{{TimeOfDay: "09:00", Capacity: 0}})
		board, err := ComputeSlotState(cfg, monday, nil, 0)
		require.NoError(t, err)

		s := mustSlot(t, board, "09:00")
		assert.True(t, s.IsFull)
		assert.False(t, s.Offerable)
	})

	t.Run("zero duration contributes only its own slot", func(t *testing.T) {
		cfg := mondayConfig(domain.SlotCatalog{
			{TimeOfDay: "09:00", Capacity: 1},
			{TimeOfDay: "09:05", Capacity: 1},
		})
		existing := []*domain.Reservation{slotReservation(1, "09:00", 0, domain.StatusConfirmed)}

		board, err := ComputeSlotState(cfg, monday, existing, 30)
		require.NoError(t, err)

		assert.Equal(t, 1, mustSlot(t, board, "09:00").BookedCount)
		assert.Equal(t, 0, mustSlot(t, board, "09:05").SpillCount)
	})

	t.Run("slot outside business hours", func(t *testing.T) {
		cfg := mondayConfig(domain.SlotCatalog{{TimeOfDay: "18:00", Capacity: 1}})
		board, err := ComputeSlotState(cfg, monday, nil, 0)
		require.NoError(t, err)

		s := mustSlot(t, board, "18:00")
		assert.False(t, s.IsFull)
		assert.False(t, s.Offerable)
	})

	t.Run("closed date", func(t *testing.T) {
		cfg := mondayConfig(domain.SlotCatalog{{TimeOfDay: "09:00", Capacity: 1}})
		board, err := ComputeSlotState(cfg, monday.AddDate(0, 0, 1), nil, 0)
		require.NoError(t, err)

		assert.False(t, board.Calendar.Open)
		assert.Empty(t, board.Offerable())
	})

	t.Run("no spill across midnight", func(t *testing.T) {
		cfg := mondayConfig(domain.SlotCatalog{
			{TimeOfDay: "00:00", Capacity: 1},
			{TimeOfDay: "23:30", Capacity: 1},
		})
		existing := []*domain.Reservation{slotReservation(1, "23:30", 120, domain.StatusConfirmed)}

		board, err := ComputeSlotState(cfg, monday, existing, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, mustSlot(t, board, "00:00").SpillCount)
	})
}

func TestComputeSlotState_PoolCapacityMode(t *testing.T) {
	cfg := mondayConfig(domain.SlotCatalog{{TimeOfDay: "09:00", Capacity: 1}})
	cfg.CapacityMode = domain.CapacityPool
	existing := []*domain.Reservation{
		slotReservation(1, "09:00", 30, domain.StatusConfirmed),
		slotReservation(2, "09:00", 30, domain.StatusPending),
	}

	board, err := ComputeSlotState(cfg, monday, existing, 0)
	require.NoError(t, err)

	s := mustSlot(t, board, "09:00")
	assert.Equal(t, 3, s.Capacity)
	assert.False(t, s.IsFull)
	assert.Equal(t, 1, s.AvailableSpots())
}

func TestSpillTargets(t *testing.T) {
	cfg := mondayConfig(domain.SlotCatalog{
		{TimeOfDay: "09:00", Capacity: 1},
		{TimeOfDay: "09:30", Capacity: 1},
		{TimeOfDay: "10:00", Capacity: 1},
	})
	board, err := ComputeSlotState(cfg, monday, nil, 0)
	require.NoError(t, err)

	targets := board.SpillTargets("09:00", 50, 10)
	require.Len(t, targets, 1)
	assert.Equal(t, types.TimeString("09:30"), targets[0].TimeOfDay)

	assert.Empty(t, board.SpillTargets("09:00", 0, 60))
}
