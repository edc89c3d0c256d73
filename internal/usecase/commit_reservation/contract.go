package commit_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписания (без кэша)
type ScheduleRepository interface {
	GetConfig(ctx context.Context, poolID int64) (*domain.SchedulingConfig, error)
}

// EventPublisher публикация события о записанном бронировании
type EventPublisher interface {
	PublishCommittedBestEffort(ctx context.Context, r *domain.Reservation, verdict *domain.AdmissionVerdict)
}

// Metrics учёт вердиктов и расхождений advisory/commit
type Metrics interface {
	ObserveVerdict(style, reason, phase string)
	ObserveCommitConflict(style, reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
