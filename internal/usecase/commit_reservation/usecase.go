package commit_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/admission"
	"github.com/m04kA/SMC-ReservationService/internal/scheduling/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/snapshot"
)

const phaseCommit = "commit"

// UseCase use case для записи бронирования
// Повторяет проверку допуска внутри сериализуемой транзакции по свежему снимку,
// поэтому advisory вердикт не может привести к превышению вместимости или пересечению
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	publisher       EventPublisher
	txManager       TransactionManager
	defaults        domain.SchedulingSettings
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// publisher может быть nil, если публикация событий выключена
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	defaults domain.SchedulingSettings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		publisher:       publisher,
		txManager:       txManager,
		defaults:        defaults,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case записи бронирования
// Бизнес-отказ не является ошибкой: возвращается Response{Committed: false} с вердиктом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitReservation: pool=%d, requester=%d, style=%s", req.PoolID, req.RequesterID, req.Style)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	areq := req.ToAdmissionRequest()

	var (
		created *domain.Reservation
		fresh   *domain.AdmissionVerdict
		verdict *domain.AdmissionVerdict
	)

	// 3. Проверка и запись в сериализуемой транзакции
	// При конфликте сериализации функция выполняется заново на свежих данных
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, fresh, verdict = nil, nil, nil

		// 3.1. Конфигурация пула из БД, не из кэша
		cfg, _, err := snapshot.Config(txCtx, uc.scheduleRepo, req.PoolID, uc.defaults)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}

		// 3.2. Снимок бронирований с блокировкой строк (FOR UPDATE)
		existing, err := snapshot.Reservations(txCtx, uc.reservationRepo, cfg, areq)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}

		// 3.3. Свежий вердикт
		fresh, err = admission.Check(cfg, existing, areq, now)
		if err != nil {
			if errors.Is(err, admission.ErrInvalidInput) {
				return fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			return err
		}

		// 3.4. Сверка с advisory вердиктом: побеждает отказ
		verdict = admission.Reconcile(req.Advisory, fresh)
		if verdict.IsRejection() {
			return errRejected
		}

		// 3.5. Сохраняем бронирование
		reservation := buildReservation(req, verdict, cfg.Location())
		created, err = uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}

		return nil
	})

	if fresh != nil {
		uc.observe(req, fresh)
	}

	if errors.Is(err, errRejected) {
		uc.logger.Info("CommitReservation: pool=%d rejected, reason=%s, conflicts=%v",
			req.PoolID, verdict.Reason, verdict.Conflicts)
		return &Response{Committed: false, Verdict: verdict}, nil
	}
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			uc.logger.Warn("CommitReservation: invalid request for pool=%d: %v", req.PoolID, err)
			return nil, err
		}
		uc.logger.Error("CommitReservation: failed for pool=%d: %v", req.PoolID, err)
		if !errors.Is(err, ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CommitReservation: created reservation id=%d, pool=%d, status=%s",
		created.ID, created.PoolID, created.Status)

	// 4. Событие после коммита
	if uc.publisher != nil {
		uc.publisher.PublishCommittedBestEffort(ctx, created, verdict)
	}

	return &Response{Committed: true, Reservation: created, Verdict: verdict}, nil
}

// buildReservation собирает бронирование из запроса и вердикта
// Слот сразу подтверждается, интервал ждёт подтверждения
func buildReservation(req *Request, verdict *domain.AdmissionVerdict, loc *time.Location) *domain.Reservation {
	r := &domain.Reservation{
		Style:       req.Style,
		PoolID:      req.PoolID,
		RequesterID: req.RequesterID,
		Notes:       req.Notes,
	}

	if req.Style == domain.StyleInterval {
		r.ResourceID = req.ResourceID
		r.StartAt = req.StartAt
		r.EndAt = req.EndAt
		r.Date = calendar.DateOf(req.StartAt, loc)
		r.DurationMinutes = int(req.EndAt.Sub(req.StartAt) / time.Minute)
		r.Status = domain.StatusPending
		return r
	}

	r.ResourceID = verdict.AssignedResourceID
	r.Date = calendar.DateOf(req.Date, nil)
	r.TimeOfDay = req.SlotTime
	r.DurationMinutes = req.DurationMinutes
	r.StartAt = req.SlotTime.On(r.Date, loc)
	r.EndAt = r.StartAt.Add(time.Duration(req.DurationMinutes) * time.Minute)
	r.Status = domain.StatusConfirmed
	return r
}

// observe учитывает свежий вердикт последней попытки и расхождение с advisory
func (uc *UseCase) observe(req *Request, fresh *domain.AdmissionVerdict) {
	uc.metrics.ObserveVerdict(string(req.Style), fresh.OutcomeLabel(), phaseCommit)

	if req.Advisory != nil && !req.Advisory.IsRejection() && fresh.IsRejection() {
		uc.metrics.ObserveCommitConflict(string(req.Style), string(fresh.Reason))
		uc.logger.Warn("CommitReservation: pool=%d advisory admitted, fresh rejected with %s",
			req.PoolID, fresh.Reason)
	}
}
