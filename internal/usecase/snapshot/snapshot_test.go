package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type fakeReservations struct {
	filters []domain.ReservationsFilter
	result  []*domain.Reservation
	err     error
}

func (f *fakeReservations) List(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	f.filters = append(f.filters, filter)
	return f.result, f.err
}

type fakeSchedule struct {
	cfg *domain.SchedulingConfig
	err error
}

func (f *fakeSchedule) GetConfig(_ context.Context, _ int64) (*domain.SchedulingConfig, error) {
	return f.cfg, f.err
}

func TestConfig_DefaultsForUnknownPool(t *testing.T) {
	defaults := domain.DefaultSchedulingSettings()
	defaults.BufferMinutes = 15

	cfg, isDefault, err := Config(context.Background(), &fakeSchedule{err: scheduleRepo.ErrScheduleNotFound}, 4, defaults)
	require.NoError(t, err)
	assert.True(t, isDefault)
	assert.Equal(t, int64(4), cfg.PoolID)
	assert.Equal(t, 15, cfg.BufferMinutes)
	assert.Empty(t, cfg.Catalog)
}

func TestConfig_StoreErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")

	_, _, err := Config(context.Background(), &fakeSchedule{err: cause}, 4, domain.DefaultSchedulingSettings())
	assert.ErrorIs(t, err, ErrLoadConfig)
	assert.ErrorIs(t, err, cause)
}

func TestReservations_Interval(t *testing.T) {
	repo := &fakeReservations{result: []*domain.Reservation{{ID: 1}}}
	cfg := &domain.SchedulingConfig{BufferMinutes: 30}
	req := &domain.AdmissionRequest{
		Style:      domain.StyleInterval,
		PoolID:     1,
		ResourceID: ptr.Ptr(int64(9)),
		StartAt:    time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC),
	}

	got, err := Reservations(context.Background(), repo, cfg, req)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	require.Len(t, repo.filters, 1)

	f := repo.filters[0]
	assert.Equal(t, int64(9), *f.ResourceID)
	assert.Nil(t, f.PoolID)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC), *f.RangeStart)
	assert.Equal(t, req.EndAt, *f.RangeEnd)
	assert.Equal(t, domain.DefaultBlockingStatuses, f.Statuses)
}

func TestReservations_SlotWithPreferredUnit(t *testing.T) {
	repo := &fakeReservations{result: []*domain.Reservation{{ID: 1}}}
	cfg := &domain.SchedulingConfig{BufferMinutes: 10, Timezone: "UTC"}
	req := &domain.AdmissionRequest{
		Style:           domain.StyleSlot,
		PoolID:          3,
		ResourceID:      ptr.Ptr(int64(5)),
		Date:            time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		SlotTime:        "09:00",
		DurationMinutes: 50,
	}

	got, err := Reservations(context.Background(), repo, cfg, req)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	require.Len(t, repo.filters, 2)

	pool := repo.filters[0]
	assert.Equal(t, int64(3), *pool.PoolID)
	assert.Equal(t, domain.StyleSlot, *pool.Style)
	assert.Equal(t, req.Date, *pool.StartDate)
	assert.Equal(t, req.Date, *pool.EndDate)

	unit := repo.filters[1]
	assert.Equal(t, int64(5), *unit.ResourceID)
	assert.Equal(t, time.Date(2024, 6, 3, 8, 50, 0, 0, time.UTC), *unit.RangeStart)
	assert.Equal(t, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), *unit.RangeEnd)
}

func TestReservations_StoreError(t *testing.T) {
	repo := &fakeReservations{err: errors.New("timeout")}
	cfg := &domain.SchedulingConfig{}
	req := &domain.AdmissionRequest{Style: domain.StyleSlot, PoolID: 1, Date: time.Now(), SlotTime: "09:00", DurationMinutes: 30}

	_, err := Reservations(context.Background(), repo, cfg, req)
	assert.ErrorIs(t, err, ErrLoadReservations)
}
