package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/capacity"
)

// buildSlots переводит состояние слотов в ответ
//
// Слот предлагается, если он свободен по данным доски и:
//   - для сегодняшней даты начинается не раньше now + minLeadTime
//   - при заданной длительности его занятость не переходит в заполненный слот
func buildSlots(
	board *capacity.Board,
	cfg *domain.SchedulingConfig,
	now time.Time,
	durationMinutes int,
) []Slot {
	loc := cfg.Location()
	earliest := now.Add(time.Duration(cfg.MinLeadTimeMinutes) * time.Minute)

	result := make([]Slot, 0, len(board.Slots))
	for i := range board.Slots {
		state := &board.Slots[i]

		offerable := state.Offerable
		if offerable && state.TimeOfDay.On(board.Date, loc).Before(earliest) {
			offerable = false
		}
		if offerable && durationMinutes > 0 && spillsIntoFull(board, state, durationMinutes, cfg.BufferMinutes) {
			offerable = false
		}

		result = append(result, Slot{
			StartTime:      state.TimeOfDay,
			Capacity:       state.Capacity,
			BookedCount:    state.BookedCount,
			SpillCount:     state.SpillCount,
			AvailableSpots: state.AvailableSpots(),
			OccupancyRate:  state.OccupancyRate(),
			Offerable:      offerable,
		})
	}

	return result
}

func spillsIntoFull(board *capacity.Board, state *domain.SlotState, durationMinutes, bufferMinutes int) bool {
	for _, target := range board.SpillTargets(state.TimeOfDay, durationMinutes, bufferMinutes) {
		if target.IsFull {
			return true
		}
	}
	return false
}
