package remove_holiday

import (
	"context"
	"time"
)

type ScheduleService interface {
	RemoveHoliday(ctx context.Context, poolID int64, date time.Time, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
