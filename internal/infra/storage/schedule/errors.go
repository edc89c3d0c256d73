package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда для пула нет сохранённых настроек
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrHolidayNotFound возвращается при удалении несуществующего выходного
	ErrHolidayNotFound = errors.New("schedule.repository: holiday not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
