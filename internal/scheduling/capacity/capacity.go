package capacity

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/calendar"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Board состояние всех слотов каталога на одну дату
type Board struct {
	Date     time.Time
	Calendar calendar.Resolution
	Slots    []domain.SlotState

	index map[types.TimeString]int
}

// ComputeSlotState считает занятость слотов каталога на дату
//
// Для каждого блокирующего слотового бронирования пула на эту дату:
//   - bookedCount увеличивается у слота, совпадающего с его временем начала
//   - spillCount увеличивается у каждого слота строго внутри (start, start+duration+buffer)
//
// Бронирование с duration <= 0 учитывается только в своём слоте.
// Перенос занятости на следующие сутки не моделируется.
func ComputeSlotState(
	cfg *domain.SchedulingConfig,
	date time.Time,
	existing []*domain.Reservation,
	bufferMinutes int,
) (*Board, error) {
	res, err := calendar.Resolve(cfg.Calendar, date)
	if err != nil {
		return nil, err
	}

	catalog := cfg.Catalog.Sorted()
	board := &Board{
		Date:     date,
		Calendar: res,
		Slots:    make([]domain.SlotState, len(catalog)),
		index:    make(map[types.TimeString]int, len(catalog)),
	}

	starts := make([]int, len(catalog))
	for i, slot := range catalog {
		board.Slots[i] = domain.SlotState{
			TimeOfDay: slot.TimeOfDay,
			Capacity:  cfg.SlotCapacity(slot),
		}
		board.index[slot.TimeOfDay] = i
		starts[i] = slot.TimeOfDay.Minutes()
	}

	blocking := cfg.Blocking()
	for _, r := range existing {
		if !counts(r, cfg.PoolID, date, blocking) {
			continue
		}

		start := r.TimeOfDay.Minutes()
		if start < 0 {
			continue
		}

		if i, ok := board.index[r.TimeOfDay]; ok {
			board.Slots[i].BookedCount++
		}

		if r.DurationMinutes <= 0 {
			continue
		}

		occupiedEnd := start + r.DurationMinutes + bufferMinutes
		for i, slotStart := range starts {
			if start < slotStart && slotStart < occupiedEnd {
				board.Slots[i].SpillCount++
			}
		}
	}

	for i := range board.Slots {
		s := &board.Slots[i]
		s.IsFull = s.Occupied() >= s.Capacity
		s.Offerable = res.Open && s.Capacity > 0 && !s.IsFull && res.InBusinessHours(s.TimeOfDay)
	}

	return board, nil
}

// Slot состояние слота по времени начала
func (b *Board) Slot(t types.TimeString) (*domain.SlotState, bool) {
	i, ok := b.index[t]
	if !ok {
		return nil, false
	}
	return &b.Slots[i], true
}

// SpillTargets слоты, в которые перейдёт занятость кандидата,
// начинающегося в start, длительностью durationMinutes и с буфером bufferMinutes
func (b *Board) SpillTargets(start types.TimeString, durationMinutes, bufferMinutes int) []*domain.SlotState {
	startMin := start.Minutes()
	if startMin < 0 || durationMinutes <= 0 {
		return nil
	}

	occupiedEnd := startMin + durationMinutes + bufferMinutes
	targets := make([]*domain.SlotState, 0)
	for i := range b.Slots {
		m := b.Slots[i].TimeOfDay.Minutes()
		if startMin < m && m < occupiedEnd {
			targets = append(targets, &b.Slots[i])
		}
	}
	return targets
}

// Offerable слоты, доступные для выбора
func (b *Board) Offerable() []domain.SlotState {
	result := make([]domain.SlotState, 0, len(b.Slots))
	for _, s := range b.Slots {
		if s.Offerable {
			result = append(result, s)
		}
	}
	return result
}

func counts(r *domain.Reservation, poolID int64, date time.Time, blocking []domain.ReservationStatus) bool {
	if r == nil || r.Style != domain.StyleSlot {
		return false
	}
	if poolID != 0 && r.PoolID != poolID {
		return false
	}
	if !calendar.SameDate(r.Date, date) {
		return false
	}
	return r.IsBlocking(blocking)
}
