package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const (
	tableSettings    = "pool_settings"
	tableWeeklyHours = "pool_weekly_hours"
	tableHolidays    = "pool_holidays"
	tableSlotCatalog = "pool_slot_catalog"
)

// Repository репозиторий расписания пула: настройки, недельный шаблон, выходные и каталог слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfig собирает полную конфигурацию планирования пула
// Возвращает ErrScheduleNotFound, если у пула нет строки настроек
func (r *Repository) GetConfig(ctx context.Context, poolID int64) (*domain.SchedulingConfig, error) {
	cfg, err := r.getSettings(ctx, poolID)
	if err != nil {
		return nil, err
	}

	weekly, err := r.GetWeekly(ctx, poolID)
	if err != nil {
		return nil, err
	}

	holidays, err := r.GetHolidays(ctx, poolID)
	if err != nil {
		return nil, err
	}

	catalog, err := r.GetCatalog(ctx, poolID)
	if err != nil {
		return nil, err
	}

	cfg.Calendar = domain.BusinessCalendar{Weekly: weekly, Holidays: holidays}
	cfg.Catalog = catalog

	return cfg, nil
}

func (r *Repository) getSettings(ctx context.Context, poolID int64) (*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"pool_id",
		"buffer_minutes",
		"pool_size",
		"capacity_mode",
		"min_lead_time_minutes",
		"advance_booking_days",
		"timezone",
		"updated_at",
	).
		From(tableSettings).
		Where(squirrel.Eq{"pool_id": poolID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getSettings - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.SchedulingConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.PoolID,
		&cfg.BufferMinutes,
		&cfg.PoolSize,
		&cfg.CapacityMode,
		&cfg.MinLeadTimeMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.Timezone,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getSettings - scan settings: %w", ErrScanRow, err)
	}

	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// GetWeekly получает недельный шаблон рабочих часов
func (r *Repository) GetWeekly(ctx context.Context, poolID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "is_open", "open_time", "close_time").
		From(tableWeeklyHours).
		Where(squirrel.Eq{"pool_id": poolID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	weekly := make(domain.WeeklySchedule, 7)
	for rows.Next() {
		var weekday int
		var day domain.DaySchedule

		if err := rows.Scan(&weekday, &day.IsOpen, &day.OpenTime, &day.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetWeekly - scan row: %w", ErrScanRow, err)
		}
		weekly[time.Weekday(weekday)] = day
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - rows error: %w", ErrScanRow, err)
	}

	return weekly, nil
}

// GetHolidays получает выходные пула, отсортированные по дате
func (r *Repository) GetHolidays(ctx context.Context, poolID int64) ([]domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("holiday_date", "note").
		From(tableHolidays).
		Where(squirrel.Eq{"pool_id": poolID}).
		OrderBy("holiday_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.Date, &h.Note); err != nil {
			return nil, fmt.Errorf("%w: GetHolidays - scan row: %w", ErrScanRow, err)
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHolidays - rows error: %w", ErrScanRow, err)
	}

	return holidays, nil
}

// GetCatalog получает каталог слотов пула, отсортированный по времени
func (r *Repository) GetCatalog(ctx context.Context, poolID int64) (domain.SlotCatalog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_of_day", "capacity").
		From(tableSlotCatalog).
		Where(squirrel.Eq{"pool_id": poolID}).
		OrderBy("time_of_day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCatalog - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCatalog - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	catalog := make(domain.SlotCatalog, 0)
	for rows.Next() {
		var slot domain.CatalogSlot
		if err := rows.Scan(&slot.TimeOfDay, &slot.Capacity); err != nil {
			return nil, fmt.Errorf("%w: GetCatalog - scan row: %w", ErrScanRow, err)
		}
		catalog = append(catalog, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCatalog - rows error: %w", ErrScanRow, err)
	}

	return catalog, nil
}

// UpsertSettings создает или обновляет настройки пула
func (r *Repository) UpsertSettings(ctx context.Context, poolID int64, settings domain.SchedulingSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSettings).
		Columns(
			"pool_id",
			"buffer_minutes",
			"pool_size",
			"capacity_mode",
			"min_lead_time_minutes",
			"advance_booking_days",
			"timezone",
		).
		Values(
			poolID,
			settings.BufferMinutes,
			settings.PoolSize,
			settings.CapacityMode,
			settings.MinLeadTimeMinutes,
			settings.AdvanceBookingDays,
			settings.Timezone,
		).
		Suffix(`ON CONFLICT (pool_id) DO UPDATE SET
			buffer_minutes = EXCLUDED.buffer_minutes,
			pool_size = EXCLUDED.pool_size,
			capacity_mode = EXCLUDED.capacity_mode,
			min_lead_time_minutes = EXCLUDED.min_lead_time_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertSettings - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertSettings - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ReplaceWeekly заменяет недельный шаблон целиком
// Должен вызываться в транзакции вместе с остальными изменениями расписания
func (r *Repository) ReplaceWeekly(ctx context.Context, poolID int64, weekly domain.WeeklySchedule) error {
	if err := r.deleteAll(ctx, tableWeeklyHours, poolID, "ReplaceWeekly"); err != nil {
		return err
	}
	if len(weekly) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert(tableWeeklyHours).
		Columns("pool_id", "weekday", "is_open", "open_time", "close_time")

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day, ok := weekly[weekday]
		if !ok {
			continue
		}
		insertBuilder = insertBuilder.Values(poolID, int(weekday), day.IsOpen, day.OpenTime, day.CloseTime)
	}

	return r.execInsert(ctx, insertBuilder, "ReplaceWeekly")
}

// ReplaceCatalog заменяет каталог слотов целиком
func (r *Repository) ReplaceCatalog(ctx context.Context, poolID int64, catalog domain.SlotCatalog) error {
	if err := r.deleteAll(ctx, tableSlotCatalog, poolID, "ReplaceCatalog"); err != nil {
		return err
	}
	if len(catalog) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert(tableSlotCatalog).
		Columns("pool_id", "time_of_day", "capacity")

	for _, slot := range catalog {
		insertBuilder = insertBuilder.Values(poolID, slot.TimeOfDay, slot.Capacity)
	}

	return r.execInsert(ctx, insertBuilder, "ReplaceCatalog")
}

// AddHoliday добавляет выходной; для существующей даты обновляет примечание
func (r *Repository) AddHoliday(ctx context.Context, poolID int64, holiday domain.Holiday) error {
	insertBuilder := psqlbuilder.Insert(tableHolidays).
		Columns("pool_id", "holiday_date", "note").
		Values(poolID, holiday.Date, holiday.Note).
		Suffix("ON CONFLICT (pool_id, holiday_date) DO UPDATE SET note = EXCLUDED.note")

	return r.execInsert(ctx, insertBuilder, "AddHoliday")
}

// RemoveHoliday удаляет выходной
func (r *Repository) RemoveHoliday(ctx context.Context, poolID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableHolidays).
		Where(squirrel.Eq{"pool_id": poolID, "holiday_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveHoliday - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveHoliday - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveHoliday - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHolidayNotFound
	}

	return nil
}

func (r *Repository) deleteAll(ctx context.Context, table string, poolID int64, method string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"pool_id": poolID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, method, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute delete: %w", ErrExecQuery, method, err)
	}

	return nil
}

func (r *Repository) execInsert(ctx context.Context, insertBuilder squirrel.InsertBuilder, method string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build insert query: %v", ErrBuildQuery, method, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute insert: %w", ErrExecQuery, method, err)
	}

	return nil
}
