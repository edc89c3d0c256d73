package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// SlotState occupancy of one catalog slot on one date
type SlotState struct {
	TimeOfDay   types.TimeString
	Capacity    int
	BookedCount int // reservations starting in this slot
	SpillCount  int // earlier reservations still running into this slot
	IsFull      bool
	Offerable   bool
}

// Occupied returns booked plus spilled reservations
func (s *SlotState) Occupied() int {
	return s.BookedCount + s.SpillCount
}

// AvailableSpots returns free units, never negative
func (s *SlotState) AvailableSpots() int {
	free := s.Capacity - s.Occupied()
	if free < 0 {
		return 0
	}
	return free
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *SlotState) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	occupied := s.Occupied()
	if occupied > s.Capacity {
		occupied = s.Capacity
	}
	return float64(occupied) / float64(s.Capacity) * 100
}
