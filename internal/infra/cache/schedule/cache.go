package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const keyPrefix = "reservation:schedule:"

// CachedRepository read-through кэш конфигурации планирования в Redis
// Используется только на advisory-пути: запись бронирования читает конфигурацию из БД
//
// Любая ошибка Redis не ломает чтение: пишем предупреждение и идём в репозиторий.
type CachedRepository struct {
	repo   Repository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger Logger
}

// NewCachedRepository создает кэширующую обёртку над репозиторием
func NewCachedRepository(repo Repository, rdb redis.Cmdable, ttl time.Duration, logger Logger) *CachedRepository {
	return &CachedRepository{
		repo:   repo,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// GetConfig возвращает конфигурацию пула из кэша или из репозитория
func (c *CachedRepository) GetConfig(ctx context.Context, poolID int64) (*domain.SchedulingConfig, error) {
	key := Key(poolID)

	cfg, err := c.get(ctx, key)
	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, redis.Nil):
		// промах
	default:
		c.logger.Warn("GetConfig: pool_id=%d - cache read failed: %v", poolID, err)
	}

	cfg, err = c.repo.GetConfig(ctx, poolID)
	if err != nil {
		return nil, err
	}

	if err := c.set(ctx, key, cfg); err != nil {
		c.logger.Warn("GetConfig: pool_id=%d - cache write failed: %v", poolID, err)
	}

	return cfg, nil
}

// Invalidate удаляет конфигурацию пула из кэша
func (c *CachedRepository) Invalidate(ctx context.Context, poolID int64) error {
	if err := c.rdb.Del(ctx, Key(poolID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - del: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Key ключ записи кэша для пула
func Key(poolID int64) string {
	return keyPrefix + strconv.FormatInt(poolID, 10)
}

func (c *CachedRepository) get(ctx context.Context, key string) (*domain.SchedulingConfig, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get: %v", ErrCacheUnavailable, err)
	}

	return decode(data)
}

func (c *CachedRepository) set(ctx context.Context, key string, cfg *domain.SchedulingConfig) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func encode(cfg *domain.SchedulingConfig) ([]byte, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*domain.SchedulingConfig, error) {
	var cfg domain.SchedulingConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &cfg, nil
}
