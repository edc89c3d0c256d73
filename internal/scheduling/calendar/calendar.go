package calendar

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ErrInvalidDate возвращается для нулевой даты
var ErrInvalidDate = errors.New("calendar: date is required")

// Resolution результат разрешения календаря на дату
type Resolution struct {
	Open         bool
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	ClosedReason domain.ClosedReason
	HolidayNote  *string
}

// Resolve определяет, открыт ли пул в указанную дату и в какие часы
// Порядок: недельный шаблон, затем праздники (праздник закрывает даже рабочий день)
func Resolve(cal domain.BusinessCalendar, date time.Time) (Resolution, error) {
	if date.IsZero() {
		return Resolution{}, ErrInvalidDate
	}

	day, ok := cal.Weekly[date.Weekday()]
	if !ok || !day.IsOpen {
		return Resolution{Open: false, ClosedReason: domain.ClosedWeekly}, nil
	}

	if holiday, ok := FindHoliday(cal.Holidays, date); ok {
		return Resolution{
			Open:         false,
			ClosedReason: domain.ClosedHoliday,
			HolidayNote:  holiday.Note,
		}, nil
	}

	return Resolution{
		Open:      true,
		OpenTime:  day.OpenTime,
		CloseTime: day.CloseTime,
	}, nil
}

// InBusinessHours true, если t попадает в рабочие часы (обе границы включительно)
func (r Resolution) InBusinessHours(t types.TimeString) bool {
	if !r.Open {
		return false
	}
	m := t.Minutes()
	if m < 0 {
		return false
	}
	return r.OpenTime.Minutes() <= m && m <= r.CloseTime.Minutes()
}

// InBusinessHours разрешает календарь и проверяет время суток
func InBusinessHours(cal domain.BusinessCalendar, date time.Time, t types.TimeString) (bool, error) {
	res, err := Resolve(cal, date)
	if err != nil {
		return false, err
	}
	return res.InBusinessHours(t), nil
}

// FindHoliday ищет праздник с точным совпадением даты
func FindHoliday(holidays []domain.Holiday, date time.Time) (domain.Holiday, bool) {
	for _, h := range holidays {
		if SameDate(h.Date, date) {
			return h, true
		}
	}
	return domain.Holiday{}, false
}

// SameDate сравнивает календарные даты без учёта времени и зоны
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOf календарная дата момента t в зоне loc (полночь UTC)
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
