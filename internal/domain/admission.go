package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// RejectionReason business reason an admission check declined a request
type RejectionReason string

const (
	ReasonClosed   RejectionReason = "CLOSED"
	ReasonOverlap  RejectionReason = "OVERLAP"
	ReasonSlotFull RejectionReason = "SLOT_FULL"
	ReasonTooSoon  RejectionReason = "TOO_SOON"
	ReasonTooFar   RejectionReason = "TOO_FAR"
)

// VerdictAdmitted outcome label of an admitted verdict
const VerdictAdmitted = "ADMITTED"

// IsValid returns true for a known reason
func (r RejectionReason) IsValid() bool {
	switch r {
	case ReasonClosed, ReasonOverlap, ReasonSlotFull, ReasonTooSoon, ReasonTooFar:
		return true
	}
	return false
}

// ClosedReason why a date is closed
type ClosedReason string

const (
	ClosedWeekly  ClosedReason = "weekly-closed"
	ClosedHoliday ClosedReason = "holiday"
)

// AdmissionRequest a candidate reservation to be checked
type AdmissionRequest struct {
	Style      ReservationStyle
	PoolID     int64
	ResourceID *int64 // required for interval, preferred unit for slot

	// interval
	StartAt time.Time
	EndAt   time.Time

	// slot
	Date            time.Time
	SlotTime        types.TimeString
	DurationMinutes int

	// BufferMinutes extends the candidate's own buffer beyond the pool buffer.
	// Existing reservations are always accounted with the pool buffer.
	BufferMinutes *int
}

// CandidateBuffer buffer applied after the candidate itself.
// It never drops below the pool buffer, since the candidate is later
// accounted with the pool buffer like every committed reservation.
func (r *AdmissionRequest) CandidateBuffer(poolBuffer int) int {
	if r.BufferMinutes != nil && *r.BufferMinutes > poolBuffer {
		return *r.BufferMinutes
	}
	return poolBuffer
}

// AdmissionVerdict outcome of an admission check
type AdmissionVerdict struct {
	Admitted           bool
	Reason             RejectionReason
	Note               *string
	Conflicts          []int64
	AssignedSlot       *types.TimeString
	AssignedResourceID *int64
	PreferenceDropped  bool
	CheckedAt          time.Time
}

// IsRejection returns true if the verdict declines the request
func (v *AdmissionVerdict) IsRejection() bool {
	return v != nil && !v.Admitted
}

// OutcomeLabel the rejection reason, or VerdictAdmitted for an admitted verdict
func (v *AdmissionVerdict) OutcomeLabel() string {
	if v == nil || v.Admitted {
		return VerdictAdmitted
	}
	return string(v.Reason)
}
