package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60

	timeStringLayout = "15:04"
)

var (
	// ErrInvalidFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfDay возвращается, когда время выходит за пределы суток
	ErrOutOfDay = errors.New("time string is out of day range")
)

// TimeString время суток в формате "HH:MM" без привязки к дате
// Используется для слотов каталога, рабочих часов и времени начала бронирования
type TimeString string

// NewTimeString создаёт TimeString из часов и минут переданного времени
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" (секунды "HH:MM:SS" отбрасываются)
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	// Postgres отдаёт тип time в формате HH:MM:SS
	if len(s) == len("15:04:05") {
		s = s[:len(timeStringLayout)]
	}

	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создаёт TimeString из минут от начала суток (0..1439)
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfDay, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет формат HH:MM и диапазоны часов и минут
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != len(timeStringLayout) || s[2] != ':' {
		return ErrInvalidFormat
	}

	hours, err := strconv.Atoi(s[:2])
	if err != nil || hours < 0 || hours > 23 {
		return ErrInvalidFormat
	}

	minutes, err := strconv.Atoi(s[3:])
	if err != nil || minutes < 0 || minutes > 59 {
		return ErrInvalidFormat
	}

	return nil
}

// Minutes возвращает количество минут от начала суток
// Для некорректного значения возвращает -1
func (t TimeString) Minutes() int {
	if t.Validate() != nil {
		return -1
	}
	s := string(t)
	hours, _ := strconv.Atoi(s[:2])
	minutes, _ := strconv.Atoi(s[3:])
	return hours*60 + minutes
}

// AddMinutes прибавляет минуты; переход через полночь считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current := t.Minutes()
	if current < 0 {
		return "", ErrInvalidFormat
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// On возвращает момент времени для указанной даты в указанной зоне
func (t TimeString) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	minutes := t.Minutes()
	if minutes < 0 {
		minutes = 0
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}

// IsBefore true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// IsZero true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner для колонок типа time / text
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidFormat, src)
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
