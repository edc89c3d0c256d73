package check_admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/admission"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/snapshot"
)

const phaseAdvisory = "advisory"

// UseCase advisory-проверка допуска без записи
// Вердикт показывается клиенту и передаётся обратно при записи бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	defaults        domain.SchedulingSettings
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	defaults domain.SchedulingSettings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		defaults:        defaults,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет проверку допуска
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAdmission: pool=%d, style=%s", req.PoolID, req.Style)

	areq := req.ToAdmissionRequest()

	// 1. Валидация входных данных
	if err := admission.ValidateRequest(areq); err != nil {
		uc.logger.Warn("CheckAdmission: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Конфигурация пула
	cfg, isDefault, err := snapshot.Config(ctx, uc.scheduleRepo, req.PoolID, uc.defaults)
	if err != nil {
		uc.logger.Error("CheckAdmission: failed to load config for pool=%d: %v", req.PoolID, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if isDefault {
		uc.logger.Info("CheckAdmission: using default config for pool=%d", req.PoolID)
	}

	// 4. Снимок бронирований
	existing, err := snapshot.Reservations(ctx, uc.reservationRepo, cfg, areq)
	if err != nil {
		uc.logger.Error("CheckAdmission: failed to load reservations for pool=%d: %v", req.PoolID, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// 5. Вердикт
	verdict, err := admission.Check(cfg, existing, areq, now)
	if err != nil {
		if errors.Is(err, admission.ErrInvalidInput) {
			uc.logger.Warn("CheckAdmission: invalid request for pool=%d: %v", req.PoolID, err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		uc.logger.Error("CheckAdmission: check failed for pool=%d: %v", req.PoolID, err)
		return nil, err
	}

	uc.metrics.ObserveVerdict(string(req.Style), verdict.OutcomeLabel(), phaseAdvisory)

	if verdict.IsRejection() {
		uc.logger.Info("CheckAdmission: pool=%d rejected, reason=%s, conflicts=%v",
			req.PoolID, verdict.Reason, verdict.Conflicts)
	} else {
		uc.logger.Info("CheckAdmission: pool=%d admitted, preference_dropped=%t",
			req.PoolID, verdict.PreferenceDropped)
	}

	return &Response{Verdict: verdict}, nil
}
