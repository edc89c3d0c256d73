package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// memorySchedule хранит конфигурации пулов в памяти
type memorySchedule struct {
	configs map[int64]*domain.SchedulingConfig
	getErr  error
}

func newMemorySchedule() *memorySchedule {
	return &memorySchedule{configs: map[int64]*domain.SchedulingConfig{}}
}

func (m *memorySchedule) GetConfig(_ context.Context, poolID int64) (*domain.SchedulingConfig, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	cfg, ok := m.configs[poolID]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	cp := *cfg
	return &cp, nil
}

func (m *memorySchedule) UpsertSettings(_ context.Context, poolID int64, settings domain.SchedulingSettings) error {
	cfg, ok := m.configs[poolID]
	if !ok {
		cfg = domain.NewSchedulingConfig(poolID, settings)
		m.configs[poolID] = cfg
	}
	cfg.ApplySettings(settings)
	return nil
}

func (m *memorySchedule) ReplaceWeekly(_ context.Context, poolID int64, weekly domain.WeeklySchedule) error {
	m.configs[poolID].Calendar.Weekly = weekly
	return nil
}

func (m *memorySchedule) ReplaceCatalog(_ context.Context, poolID int64, catalog domain.SlotCatalog) error {
	m.configs[poolID].Catalog = catalog
	return nil
}

func (m *memorySchedule) AddHoliday(_ context.Context, poolID int64, holiday domain.Holiday) error {
	cfg := m.configs[poolID]
	cfg.Calendar.Holidays = append(cfg.Calendar.Holidays, holiday)
	return nil
}

func (m *memorySchedule) RemoveHoliday(_ context.Context, poolID int64, date time.Time) error {
	cfg, ok := m.configs[poolID]
	if !ok {
		return scheduleRepo.ErrHolidayNotFound
	}
	for i, h := range cfg.Calendar.Holidays {
		if h.Date.Equal(date) {
			cfg.Calendar.Holidays = append(cfg.Calendar.Holidays[:i], cfg.Calendar.Holidays[i+1:]...)
			return nil
		}
	}
	return scheduleRepo.ErrHolidayNotFound
}

type recordingCache struct {
	invalidated []int64
	err         error
}

func (r *recordingCache) Invalidate(_ context.Context, poolID int64) error {
	r.invalidated = append(r.invalidated, poolID)
	return r.err
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{ warns int }

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  { l.warns++ }
func (l *nopLogger) Error(string, ...interface{}) {}

func newService(repo *memorySchedule, cache CacheInvalidator) (*Service, *nopLogger) {
	log := &nopLogger{}
	return NewService(repo, cache, passThroughTx{}, domain.DefaultSchedulingSettings(), log), log
}

func TestService_GetSchedule_Defaults(t *testing.T) {
	svc, _ := newService(newMemorySchedule(), nil)

	resp, err := svc.GetSchedule(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
	assert.Len(t, resp.WeeklyHours, 7)
	for _, day := range resp.WeeklyHours {
		assert.False(t, day.IsOpen)
	}
	assert.Empty(t, resp.Catalog)
}

func TestService_GetSchedule_RepositoryError(t *testing.T) {
	repo := newMemorySchedule()
	repo.getErr = errors.New("connection refused")
	svc, _ := newService(repo, nil)

	_, err := svc.GetSchedule(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.GetSchedule(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateSchedule(t *testing.T) {
	repo := newMemorySchedule()
	cache := &recordingCache{}
	svc, _ := newService(repo, cache)

	resp, err := svc.UpdateSchedule(context.Background(), 7, &models.UpdateScheduleRequest{
		UserID:        1,
		BufferMinutes: ptr.Ptr(10),
		CapacityMode:  ptr.Ptr("pool"),
		PoolSize:      ptr.Ptr(3),
		Timezone:      ptr.Ptr("Europe/Moscow"),
		WeeklyHours: []models.DayHours{
			{Weekday: 1, IsOpen: true, OpenTime: ptr.Ptr("09:00"), CloseTime: ptr.Ptr("18:00")},
			{Weekday: 0, IsOpen: false},
		},
		Catalog: []models.CatalogEntry{
			{Time: "10:00", Capacity: 1},
			{Time: "09:00", Capacity: 2},
		},
	})
	require.NoError(t, err)

	assert.False(t, resp.IsDefault)
	assert.Equal(t, 10, resp.BufferMinutes)
	assert.Equal(t, "pool", resp.CapacityMode)
	assert.Equal(t, domain.DefaultMinLeadTimeMinutes, resp.MinLeadTimeMinutes, "untouched settings keep their value")
	assert.True(t, resp.WeeklyHours[1].IsOpen)
	assert.Equal(t, "09:00", *resp.WeeklyHours[1].OpenTime)
	assert.False(t, resp.WeeklyHours[2].IsOpen)
	require.Len(t, resp.Catalog, 2)
	assert.Equal(t, "09:00", resp.Catalog[0].Time)
	assert.Equal(t, []int64{7}, cache.invalidated)

	// Частичное обновление не трогает каталог
	resp, err = svc.UpdateSchedule(context.Background(), 7, &models.UpdateScheduleRequest{BufferMinutes: ptr.Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.BufferMinutes)
	assert.Len(t, resp.Catalog, 2)
}

func TestService_UpdateSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateScheduleRequest
	}{
		{name: "buffer too large", req: &models.UpdateScheduleRequest{BufferMinutes: ptr.Ptr(domain.MaxBufferMinutes + 1)}},
		{name: "negative pool size", req: &models.UpdateScheduleRequest{PoolSize: ptr.Ptr(-1)}},
		{name: "unknown capacity mode", req: &models.UpdateScheduleRequest{CapacityMode: ptr.Ptr("shared")}},
		{name: "unknown timezone", req: &models.UpdateScheduleRequest{Timezone: ptr.Ptr("Mars/Olympus")}},
		{name: "horizon too far", req: &models.UpdateScheduleRequest{AdvanceBookingDays: ptr.Ptr(400)}},
		{name: "close before open", req: &models.UpdateScheduleRequest{WeeklyHours: []models.DayHours{
			{Weekday: 1, IsOpen: true, OpenTime: ptr.Ptr("18:00"), CloseTime: ptr.Ptr("09:00")},
		}}},
		{name: "open without hours", req: &models.UpdateScheduleRequest{WeeklyHours: []models.DayHours{
			{Weekday: 1, IsOpen: true},
		}}},
		{name: "weekday out of range", req: &models.UpdateScheduleRequest{WeeklyHours: []models.DayHours{
			{Weekday: 7},
		}}},
		{name: "duplicate slot", req: &models.UpdateScheduleRequest{Catalog: []models.CatalogEntry{
			{Time: "09:00", Capacity: 1}, {Time: "09:00", Capacity: 2},
		}}},
		{name: "slot capacity too large", req: &models.UpdateScheduleRequest{Catalog: []models.CatalogEntry{
			{Time: "09:00", Capacity: domain.MaxSlotCapacity + 1},
		}}},
		{name: "bad slot time", req: &models.UpdateScheduleRequest{Catalog: []models.CatalogEntry{
			{Time: "25:00", Capacity: 1},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemorySchedule()
			cache := &recordingCache{}
			svc, _ := newService(repo, cache)

			_, err := svc.UpdateSchedule(context.Background(), 7, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.configs)
			assert.Empty(t, cache.invalidated)
		})
	}
}

func TestService_UpdateSchedule_CacheFailureIsNotFatal(t *testing.T) {
	svc, log := newService(newMemorySchedule(), &recordingCache{err: errors.New("redis down")})

	_, err := svc.UpdateSchedule(context.Background(), 7, &models.UpdateScheduleRequest{BufferMinutes: ptr.Ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 1, log.warns)
}

func TestService_Holidays(t *testing.T) {
	repo := newMemorySchedule()
	cache := &recordingCache{}
	svc, _ := newService(repo, cache)
	ctx := context.Background()
	date := time.Date(2024, 12, 31, 15, 30, 0, 0, time.UTC)

	err := svc.AddHoliday(ctx, 7, &models.HolidayRequest{UserID: 1, Date: date, Note: ptr.Ptr("New Year's Eve")})
	require.NoError(t, err)

	resp, err := svc.GetSchedule(ctx, 7)
	require.NoError(t, err)
	assert.False(t, resp.IsDefault, "adding a holiday stores default settings")
	require.Len(t, resp.Holidays, 1)
	assert.Equal(t, "2024-12-31", resp.Holidays[0].Date)

	require.NoError(t, svc.RemoveHoliday(ctx, 7, date, 1))
	assert.ErrorIs(t, svc.RemoveHoliday(ctx, 7, date, 1), ErrHolidayNotFound)
	assert.Equal(t, []int64{7, 7}, cache.invalidated)
}

func TestService_AddHoliday_Invalid(t *testing.T) {
	svc, _ := newService(newMemorySchedule(), nil)
	long := string(make([]byte, domain.MaxHolidayNoteLength+1))

	err := svc.AddHoliday(context.Background(), 7, &models.HolidayRequest{Date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), Note: &long})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.AddHoliday(context.Background(), 7, &models.HolidayRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
