package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/capacity"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/snapshot"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case для получения состояния слотов пула на дату
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	defaults        domain.SchedulingSettings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	defaults domain.SchedulingSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		defaults:        defaults,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: pool=%d, date=%s", req.PoolID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Конфигурация пула
	cfg, isDefault, err := snapshot.Config(ctx, uc.scheduleRepo, req.PoolID, uc.defaults)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if isDefault {
		uc.logger.Info("GetAvailableSlots: using default config for pool=%d", req.PoolID)
	}

	// 4. Валидация даты с учетом конфигурации
	date := calendar.DateOf(req.Date, nil)
	today := calendar.DateOf(now, cfg.Location())
	if err := validateDate(date, today, cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем слотовые бронирования пула на дату
	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationsFilter{
		PoolID:    ptr.Ptr(req.PoolID),
		Style:     ptr.Ptr(domain.StyleSlot),
		StartDate: ptr.Ptr(date),
		EndDate:   ptr.Ptr(date),
		Statuses:  cfg.Blocking(),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Состояние слотов
	board, err := capacity.ComputeSlotState(cfg, date, reservations, cfg.BufferMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slot state: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slot state: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:         date,
		PoolID:       req.PoolID,
		Open:         board.Calendar.Open,
		ClosedReason: board.Calendar.ClosedReason,
		HolidayNote:  board.Calendar.HolidayNote,
		OpenTime:     board.Calendar.OpenTime,
		CloseTime:    board.Calendar.CloseTime,
		Slots:        buildSlots(board, cfg, now, req.DurationMinutes),
	}

	if !resp.Open {
		uc.logger.Info("GetAvailableSlots: pool=%d is closed on %s (%s)",
			req.PoolID, date.Format(domain.DateFormat), resp.ClosedReason)
	}

	offerable := 0
	for _, s := range resp.Slots {
		if s.Offerable {
			offerable++
		}
	}
	uc.logger.Info("GetAvailableSlots: pool=%d, date=%s, %d of %d slots offerable",
		req.PoolID, date.Format(domain.DateFormat), offerable, len(resp.Slots))

	return resp, nil
}
