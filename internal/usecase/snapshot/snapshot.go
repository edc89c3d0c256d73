package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/calendar"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// Config загружает конфигурацию пула
// Для пула без сохранённых настроек возвращает конфигурацию с настройками по умолчанию
// и пустым календарём; второй результат true в этом случае
//
// Ошибки хранилища оборачиваются через %w, чтобы повтор транзакции видел код Postgres
func Config(
	ctx context.Context,
	repo ScheduleRepository,
	poolID int64,
	defaults domain.SchedulingSettings,
) (*domain.SchedulingConfig, bool, error) {
	cfg, err := repo.GetConfig(ctx, poolID)
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		return domain.NewSchedulingConfig(poolID, defaults), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: pool_id=%d: %w", ErrLoadConfig, poolID, err)
	}
	return cfg, false, nil
}

// Reservations загружает бронирования, которые может задеть запрос
//
//   - интервал: бронирования единицы, пересекающие [start - buffer, end]
//   - слот: слотовые бронирования пула на дату запроса,
//     плюс бронирования предпочтительной единицы в окне слота
//
// Внутри транзакции репозиторий блокирует найденные строки
func Reservations(
	ctx context.Context,
	repo ReservationRepository,
	cfg *domain.SchedulingConfig,
	req *domain.AdmissionRequest,
) ([]*domain.Reservation, error) {
	bufferDur := time.Duration(cfg.BufferMinutes) * time.Minute
	candidateBufferDur := time.Duration(req.CandidateBuffer(cfg.BufferMinutes)) * time.Minute
	blocking := cfg.Blocking()

	if req.Style == domain.StyleInterval {
		if req.ResourceID == nil {
			return []*domain.Reservation{}, nil
		}
		return list(ctx, repo, domain.ReservationsFilter{
			ResourceID: ptr.Ptr(*req.ResourceID),
			RangeStart: ptr.Ptr(req.StartAt.Add(-bufferDur)),
			RangeEnd:   ptr.Ptr(req.EndAt),
			Statuses:   blocking,
		})
	}

	date := calendar.DateOf(req.Date, nil)
	result, err := list(ctx, repo, domain.ReservationsFilter{
		PoolID:    ptr.Ptr(req.PoolID),
		Style:     ptr.Ptr(domain.StyleSlot),
		StartDate: ptr.Ptr(date),
		EndDate:   ptr.Ptr(date),
		Statuses:  blocking,
	})
	if err != nil {
		return nil, err
	}

	if req.ResourceID == nil {
		return result, nil
	}

	start := req.SlotTime.On(date, cfg.Location())
	end := start.Add(time.Duration(req.DurationMinutes)*time.Minute + candidateBufferDur)
	unit, err := list(ctx, repo, domain.ReservationsFilter{
		ResourceID: ptr.Ptr(*req.ResourceID),
		RangeStart: ptr.Ptr(start.Add(-bufferDur)),
		RangeEnd:   ptr.Ptr(end),
		Statuses:   blocking,
	})
	if err != nil {
		return nil, err
	}

	return append(result, unit...), nil
}

func list(ctx context.Context, repo ReservationRepository, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	reservations, err := repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadReservations, err)
	}
	return reservations, nil
}
