package schedule

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Repository источник конфигурации планирования
type Repository interface {
	GetConfig(ctx context.Context, poolID int64) (*domain.SchedulingConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
