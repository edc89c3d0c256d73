package add_holiday

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
)

type ScheduleService interface {
	AddHoliday(ctx context.Context, poolID int64, req *models.HolidayRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
