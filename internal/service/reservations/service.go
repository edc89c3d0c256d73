package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	defaultRejectReason = "rejected by operator"
	defaultCancelReason = "cancelled by requester"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// List получает бронирования пула с фильтрацией
//
// Примеры использования:
// - Все бронирования пула: List(ctx, &ListReservationsRequest{PoolID: 7})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только ожидающие подтверждения: Status = "pending"
// - Бронирования конкретной единицы: указать ResourceID
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching reservations for pool=%d", req.PoolID)
	if req.ResourceID != nil {
		logMsg += fmt.Sprintf(", resource=%d", *req.ResourceID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.PoolID <= 0 {
		return nil, fmt.Errorf("%w: pool id must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for pool=%d: %v", req.PoolID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for pool=%d: %v", req.PoolID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations for pool=%d", len(reservations), req.PoolID)
	return models.FromDomainReservationList(reservations), nil
}

// Confirm подтверждает ожидающее бронирование
// Статус проверяется под блокировкой строки внутри транзакции
func (s *Service) Confirm(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%d by user=%d", id, userID)

	var result *domain.Reservation
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.load(ctx, "Confirm", id)
		if err != nil {
			return err
		}

		if !reservation.CanBeConfirmed() {
			s.logger.Warn("Confirm: reservation id=%d has status=%s", id, reservation.Status)
			return ErrCannotConfirm
		}

		if err := s.reservationRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
			return s.mapRepoError("Confirm", id, err)
		}

		result, err = s.load(ctx, "Confirm", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: reservation id=%d confirmed", id)
	return models.FromDomainReservation(result), nil
}

// Reject отклоняет ожидающее бронирование
func (s *Service) Reject(ctx context.Context, id int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Reject: rejecting reservation id=%d by user=%d", id, req.UserID)

	reason, err := normalizeReason(req.CancellationReason, defaultRejectReason)
	if err != nil {
		return nil, err
	}

	var result *domain.Reservation
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.load(ctx, "Reject", id)
		if err != nil {
			return err
		}

		if reservation.Status != domain.StatusPending {
			s.logger.Warn("Reject: reservation id=%d has status=%s", id, reservation.Status)
			return ErrCannotReject
		}

		if err := s.reservationRepo.Cancel(ctx, id, reason); err != nil {
			return s.mapRepoError("Reject", id, err)
		}

		result, err = s.load(ctx, "Reject", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reject: reservation id=%d rejected", id)
	return models.FromDomainReservation(result), nil
}

// Cancel отменяет бронирование
// Отменить бронирование может только тот, кто его создал
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.UserID)

	reason, err := normalizeReason(req.CancellationReason, defaultCancelReason)
	if err != nil {
		return nil, err
	}

	var result *domain.Reservation
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.load(ctx, "Cancel", id)
		if err != nil {
			return err
		}

		if reservation.RequesterID != req.UserID {
			s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, id)
			return ErrAccessDenied
		}

		if !reservation.CanBeCancelled() {
			s.logger.Warn("Cancel: reservation id=%d has status=%s", id, reservation.Status)
			return ErrCannotCancel
		}

		if err := s.reservationRepo.Cancel(ctx, id, reason); err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		result, err = s.load(ctx, "Cancel", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", id)
	return models.FromDomainReservation(result), nil
}

// load получает бронирование и маппит ошибки репозитория
func (s *Service) load(ctx context.Context, method string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(method, id, err)
	}
	return reservation, nil
}

func (s *Service) mapRepoError(method string, id int64, err error) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		s.logger.Warn("%s: reservation id=%d not found", method, id)
		return ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation id=%d: %v", method, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func normalizeReason(reason, fallback string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fallback, nil
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return "", fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return reason, nil
}
