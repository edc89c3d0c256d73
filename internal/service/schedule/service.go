package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
)

// Service сервис управления расписанием и каталогом пулов
type Service struct {
	scheduleRepo ScheduleRepository
	cache        CacheInvalidator
	txManager    TransactionManager
	defaults     domain.SchedulingSettings
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
// cache может быть nil, если кэш отключён
func NewService(
	scheduleRepo ScheduleRepository,
	cache CacheInvalidator,
	txManager TransactionManager,
	defaults domain.SchedulingSettings,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		cache:        cache,
		txManager:    txManager,
		defaults:     defaults,
		logger:       logger,
	}
}

// GetSchedule получает конфигурацию пула
// Для пула без сохранённых настроек возвращает значения по умолчанию (isDefault=true)
func (s *Service) GetSchedule(ctx context.Context, poolID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for pool=%d", poolID)

	if poolID <= 0 {
		return nil, fmt.Errorf("%w: pool id must be positive", ErrInvalidInput)
	}

	cfg, isDefault, err := s.load(ctx, "GetSchedule", poolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetSchedule: successfully fetched schedule for pool=%d (default=%t)", poolID, isDefault)
	return models.FromDomainConfig(cfg, isDefault), nil
}

// UpdateSchedule обновляет настройки, рабочие часы и каталог пула
// Недостающие настройки берутся из текущей конфигурации. Изменения применяются в одной транзакции,
// после чего кэш конфигурации сбрасывается.
func (s *Service) UpdateSchedule(ctx context.Context, poolID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for pool=%d by user=%d", poolID, req.UserID)

	if poolID <= 0 {
		return nil, fmt.Errorf("%w: pool id must be positive", ErrInvalidInput)
	}

	// 1. Конвертируем и валидируем рабочие часы и каталог
	var weekly domain.WeeklySchedule
	if req.WeeklyHours != nil {
		var err error
		weekly, err = models.ToDomainWeekly(req.WeeklyHours)
		if err != nil {
			s.logger.Warn("UpdateSchedule: invalid weekly hours for pool=%d: %v", poolID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	var catalog domain.SlotCatalog
	if req.Catalog != nil {
		var err error
		catalog, err = models.ToDomainCatalog(req.Catalog)
		if err != nil {
			s.logger.Warn("UpdateSchedule: invalid catalog for pool=%d: %v", poolID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	// 2. Применяем изменения в транзакции
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, _, err := s.load(ctx, "UpdateSchedule", poolID)
		if err != nil {
			return err
		}

		settings := req.ApplyToSettings(current.Settings())
		if err := validateSettings(settings); err != nil {
			s.logger.Warn("UpdateSchedule: invalid settings for pool=%d: %v", poolID, err)
			return err
		}

		if err := s.scheduleRepo.UpsertSettings(ctx, poolID, settings); err != nil {
			return s.internal("UpdateSchedule", poolID, err)
		}

		if weekly != nil {
			if err := s.scheduleRepo.ReplaceWeekly(ctx, poolID, weekly); err != nil {
				return s.internal("UpdateSchedule", poolID, err)
			}
		}

		if catalog != nil {
			if err := s.scheduleRepo.ReplaceCatalog(ctx, poolID, catalog); err != nil {
				return s.internal("UpdateSchedule", poolID, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Сбрасываем кэш и возвращаем актуальную конфигурацию
	s.invalidate(ctx, "UpdateSchedule", poolID)

	cfg, isDefault, err := s.load(ctx, "UpdateSchedule", poolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for pool=%d", poolID)
	return models.FromDomainConfig(cfg, isDefault), nil
}

// AddHoliday добавляет выходной день пула
// Если у пула ещё нет настроек, сохраняются значения по умолчанию
func (s *Service) AddHoliday(ctx context.Context, poolID int64, req *models.HolidayRequest) error {
	s.logger.Info("AddHoliday: adding holiday %s for pool=%d by user=%d",
		req.Date.Format(domain.DateFormat), poolID, req.UserID)

	if poolID <= 0 {
		return fmt.Errorf("%w: pool id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: holiday date is required", ErrInvalidInput)
	}
	if err := validateHolidayNote(req.Note); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		_, isDefault, err := s.load(ctx, "AddHoliday", poolID)
		if err != nil {
			return err
		}

		if isDefault {
			if err := s.scheduleRepo.UpsertSettings(ctx, poolID, s.defaults); err != nil {
				return s.internal("AddHoliday", poolID, err)
			}
		}

		holiday := domain.Holiday{Date: dateOnly(req.Date), Note: req.Note}
		if err := s.scheduleRepo.AddHoliday(ctx, poolID, holiday); err != nil {
			return s.internal("AddHoliday", poolID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, "AddHoliday", poolID)

	s.logger.Info("AddHoliday: successfully added holiday for pool=%d", poolID)
	return nil
}

// RemoveHoliday удаляет выходной день пула
func (s *Service) RemoveHoliday(ctx context.Context, poolID int64, date time.Time, userID int64) error {
	s.logger.Info("RemoveHoliday: removing holiday %s for pool=%d by user=%d",
		date.Format(domain.DateFormat), poolID, userID)

	if poolID <= 0 {
		return fmt.Errorf("%w: pool id must be positive", ErrInvalidInput)
	}

	err := s.scheduleRepo.RemoveHoliday(ctx, poolID, dateOnly(date))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrHolidayNotFound) {
			s.logger.Warn("RemoveHoliday: holiday %s not found for pool=%d", date.Format(domain.DateFormat), poolID)
			return ErrHolidayNotFound
		}
		return s.internal("RemoveHoliday", poolID, err)
	}

	s.invalidate(ctx, "RemoveHoliday", poolID)

	s.logger.Info("RemoveHoliday: successfully removed holiday for pool=%d", poolID)
	return nil
}

// load читает конфигурацию пула, подставляя значения по умолчанию для неизвестного пула
func (s *Service) load(ctx context.Context, method string, poolID int64) (*domain.SchedulingConfig, bool, error) {
	cfg, err := s.scheduleRepo.GetConfig(ctx, poolID)
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Info("%s: pool=%d has no stored schedule, using defaults", method, poolID)
		return domain.NewSchedulingConfig(poolID, s.defaults), true, nil
	}
	if err != nil {
		return nil, false, s.internal(method, poolID, err)
	}
	return cfg, false, nil
}

// invalidate сбрасывает кэш; ошибка кэша не отменяет сохранённые изменения
func (s *Service) invalidate(ctx context.Context, method string, poolID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, poolID); err != nil {
		s.logger.Warn("%s: failed to invalidate cache for pool=%d: %v", method, poolID, err)
	}
}

func (s *Service) internal(method string, poolID int64, err error) error {
	s.logger.Error("%s: repository error for pool=%d: %v", method, poolID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
