package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type fakeRepo struct {
	cfg   *domain.SchedulingConfig
	err   error
	calls int
}

func (f *fakeRepo) GetConfig(_ context.Context, _ int64) (*domain.SchedulingConfig, error) {
	f.calls++
	return f.cfg, f.err
}

type nopLogger struct{ warns int }

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  { l.warns++ }
func (l *nopLogger) Error(string, ...interface{}) {}

func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	repo := &fakeRepo{cfg: &domain.SchedulingConfig{PoolID: 7, BufferMinutes: 10}}
	log := &nopLogger{}
	rdb := unreachableRedis()
	defer rdb.Close()

	cache := NewCachedRepository(repo, rdb, time.Minute, log)

	cfg, err := cache.GetConfig(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.PoolID)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 2, log.warns, "read and write failures are logged")

	_, err = cache.GetConfig(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCachedRepository_RepositoryErrorIsReturned(t *testing.T) {
	repoErr := assert.AnError
	repo := &fakeRepo{err: repoErr}
	rdb := unreachableRedis()
	defer rdb.Close()

	cache := NewCachedRepository(repo, rdb, time.Minute, &nopLogger{})

	_, err := cache.GetConfig(context.Background(), 1)
	assert.ErrorIs(t, err, repoErr)
}

func TestCachedRepository_InvalidateReportsRedisError(t *testing.T) {
	rdb := unreachableRedis()
	defer rdb.Close()

	cache := NewCachedRepository(&fakeRepo{}, rdb, time.Minute, &nopLogger{})
	assert.ErrorIs(t, cache.Invalidate(context.Background(), 1), ErrCacheUnavailable)
}

func TestEncodeDecode_KeepsWeeklyTemplate(t *testing.T) {
	cfg := &domain.SchedulingConfig{
		PoolID: 3,
		Calendar: domain.BusinessCalendar{
			Weekly: domain.WeeklySchedule{
				time.Monday: {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
			},
		},
		Catalog: domain.SlotCatalog{{TimeOfDay: "09:00", Capacity: 2}},
	}

	data, err := encode(cfg)
	require.NoError(t, err)

	got, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Calendar.Weekly[time.Monday], got.Calendar.Weekly[time.Monday])
	assert.Equal(t, cfg.Catalog, got.Catalog)

	_, err = decode([]byte("{"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "reservation:schedule:42", Key(42))
}
