package conflicts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 1, hour, minute, 0, 0, time.UTC)
}

func interval(id, resourceID int64, start, end time.Time, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:         id,
		Style:      domain.StyleInterval,
		ResourceID: ptr.Ptr(resourceID),
		StartAt:    start,
		EndAt:      end,
		Status:     status,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint before", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
		{"disjoint after", at(12, 0), at(13, 0), at(10, 0), at(11, 0), false},
		{"partial", at(11, 0), at(13, 0), at(8, 0), at(12, 0), true},
		{"contained", at(9, 0), at(10, 0), at(8, 0), at(12, 0), true},
		{"touching end to start", at(10, 0), at(11, 0), at(11, 0), at(12, 0), true},
		{"touching start to end", at(12, 0), at(13, 0), at(11, 0), at(12, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

// Scenario B: V1 занят 08:00-12:00, кандидат 11:00-13:00
func TestFindOverlaps_ReturnsConflictingReservation(t *testing.T) {
	existing := []*domain.Reservation{
		interval(7, 1, at(8, 0), at(12, 0), domain.StatusConfirmed),
	}

	found, err := FindOverlaps(1, at(11, 0), at(13, 0), existing, Params{})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, IDs(found))
}

func TestFindOverlaps_FiltersResourceAndStatus(t *testing.T) {
	existing := []*domain.Reservation{
		interval(1, 1, at(9, 0), at(10, 0), domain.StatusConfirmed),
		interval(2, 1, at(9, 30), at(10, 30), domain.StatusPending),
		interval(3, 1, at(9, 0), at(12, 0), domain.StatusCancelled),
		interval(4, 2, at(9, 0), at(12, 0), domain.StatusConfirmed),
		{ID: 5, Style: domain.StyleInterval, StartAt: at(9, 0), EndAt: at(12, 0), Status: domain.StatusConfirmed},
		interval(6, 1, at(14, 0), at(15, 0), domain.StatusConfirmed),
	}

	found, err := FindOverlaps(1, at(9, 45), at(11, 0), existing, Params{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, IDs(found))

	// только подтверждённые блокируют
	found, err = FindOverlaps(1, at(9, 45), at(11, 0), existing, Params{
		Blocking: []domain.ReservationStatus{domain.StatusConfirmed},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, IDs(found))
}

func TestFindOverlaps_BoundaryTouching(t *testing.T) {
	existing := []*domain.Reservation{
		interval(9, 1, at(11, 0), at(12, 0), domain.StatusConfirmed),
	}

	found, err := FindOverlaps(1, at(10, 0), at(11, 0), existing, Params{})
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, IDs(found))
}

func TestFindOverlaps_SlotReservationUsesBuffer(t *testing.T) {
	slot := &domain.Reservation{
		ID:              11,
		Style:           domain.StyleSlot,
		ResourceID:      ptr.Ptr(int64(1)),
		Date:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeOfDay:       "09:00",
		DurationMinutes: 50,
		Status:          domain.StatusConfirmed,
	}

	// без буфера слот занят до 09:50
	found, err := FindOverlaps(1, at(9, 55), at(10, 30), []*domain.Reservation{slot}, Params{})
	require.NoError(t, err)
	assert.Empty(t, found)

	// с буфером 10 минут - до 10:00
	found, err = FindOverlaps(1, at(9, 55), at(10, 30), []*domain.Reservation{slot}, Params{BufferMinutes: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, IDs(found))
}

func TestFindOverlaps_InvalidRange(t *testing.T) {
	_, err := FindOverlaps(1, at(12, 0), at(11, 0), nil, Params{})
	assert.ErrorIs(t, err, ErrInvalidRange)
}
