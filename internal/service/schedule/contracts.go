package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ScheduleRepository интерфейс репозитория настроек и календаря пулов
type ScheduleRepository interface {
	GetConfig(ctx context.Context, poolID int64) (*domain.SchedulingConfig, error)
	UpsertSettings(ctx context.Context, poolID int64, settings domain.SchedulingSettings) error
	ReplaceWeekly(ctx context.Context, poolID int64, weekly domain.WeeklySchedule) error
	ReplaceCatalog(ctx context.Context, poolID int64, catalog domain.SlotCatalog) error
	AddHoliday(ctx context.Context, poolID int64, holiday domain.Holiday) error
	RemoveHoliday(ctx context.Context, poolID int64, date time.Time) error
}

// CacheInvalidator сбрасывает закэшированную конфигурацию пула
type CacheInvalidator interface {
	Invalidate(ctx context.Context, poolID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
