package snapshot

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository выборка бронирований по фильтру
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository источник конфигурации планирования пула
type ScheduleRepository interface {
	GetConfig(ctx context.Context, poolID int64) (*domain.SchedulingConfig, error)
}
