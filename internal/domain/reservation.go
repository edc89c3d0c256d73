package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStyle distinguishes continuous-interval holds from discrete-slot appointments
type ReservationStyle string

const (
	// StyleInterval holds a resource from a start instant to an end instant (vehicle trips)
	StyleInterval ReservationStyle = "interval"
	// StyleSlot books a named time-of-day slot from the catalog (technician appointments)
	StyleSlot ReservationStyle = "slot"
)

// IsValid returns true for a known style
func (s ReservationStyle) IsValid() bool {
	return s == StyleInterval || s == StyleSlot
}

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// IsValid returns true for a known status
func (s ReservationStatus) IsValid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// Reservation is a committed claim on a resource or a pool slot.
// Interval reservations use StartAt/EndAt. Slot reservations use Date, TimeOfDay
// and DurationMinutes; StartAt/EndAt are filled for them too (without the buffer)
// so both styles can be queried by time range.
type Reservation struct {
	ID         int64
	Style      ReservationStyle
	PoolID     int64
	ResourceID *int64 // nil = any unit of the pool

	StartAt time.Time
	EndAt   time.Time

	Date            time.Time
	TimeOfDay       types.TimeString
	DurationMinutes int

	Status      ReservationStatus
	RequesterID int64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the reservation status is in the blocking set
func (r *Reservation) IsBlocking(blocking []ReservationStatus) bool {
	for _, s := range blocking {
		if r.Status == s {
			return true
		}
	}
	return false
}

// IsActive returns true if the reservation still holds its resource
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// CanBeConfirmed returns true if the reservation is awaiting approval
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if the reservation can be cancelled or rejected
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// SlotStart returns the start instant of a slot reservation in the given location
func (r *Reservation) SlotStart(loc *time.Location) time.Time {
	return r.TimeOfDay.On(r.Date, loc)
}

// OccupiedWindow returns the closed window during which the reservation holds its unit.
// Interval reservations occupy exactly [StartAt, EndAt]; slot reservations occupy
// [start, start + duration + buffer].
func (r *Reservation) OccupiedWindow(bufferMinutes int, loc *time.Location) (time.Time, time.Time) {
	if r.Style == StyleInterval {
		return r.StartAt, r.EndAt
	}

	start := r.SlotStart(loc)
	duration := r.DurationMinutes
	if duration < 0 {
		duration = 0
	}
	return start, start.Add(time.Duration(duration+bufferMinutes) * time.Minute)
}

// ReservationsFilter filter for listing reservations
type ReservationsFilter struct {
	PoolID     *int64
	ResourceID *int64
	Style      *ReservationStyle
	StartDate  *time.Time // inclusive, by reservation date
	EndDate    *time.Time // inclusive, by reservation date
	RangeStart *time.Time // reservations whose [StartAt, EndAt] intersects the range
	RangeEnd   *time.Time
	Statuses   []ReservationStatus // empty = all statuses
}
