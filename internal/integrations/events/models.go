package events

import "time"

// EventTypeReservationCommitted тип события о записанном бронировании
const EventTypeReservationCommitted = "reservation.committed"

// ReservationCommitted событие о записанном бронировании
type ReservationCommitted struct {
	EventID           string    `json:"event_id"`
	ReservationID     int64     `json:"reservation_id"`
	Style             string    `json:"style"`
	PoolID            int64     `json:"pool_id"`
	ResourceID        *int64    `json:"resource_id,omitempty"`
	StartAt           time.Time `json:"start_at"`
	EndAt             time.Time `json:"end_at"`
	Date              string    `json:"date"`
	TimeOfDay         *string   `json:"time_of_day,omitempty"`
	DurationMinutes   int       `json:"duration_minutes,omitempty"`
	Status            string    `json:"status"`
	RequesterID       int64     `json:"requester_id"`
	PreferenceDropped bool      `json:"preference_dropped"`
	CommittedAt       time.Time `json:"committed_at"`
}
