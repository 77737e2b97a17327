package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
var ErrTimeOverflow = errors.New("types: time overflows the day")

// TimeString время суток с точностью до минуты ("09:30")
type TimeString struct {
	minutes int // минуты от полуночи
}

// NewTimeString создает TimeString из времени суток t
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute()}
}

// NewTimeStringFromString парсит строку формата HH:MM (допускается H:MM)
func NewTimeStringFromString(s string) (TimeString, error) {
	var h, m int
	if n, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || n != 2 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString{minutes: h*60 + m}, nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// AddMinutes прибавляет минуты, не выходя за пределы суток (24:00 допустимо)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	result := t.minutes + minutes
	if result < 0 || result > 24*60 {
		return TimeString{}, ErrTimeOverflow
	}
	return TimeString{minutes: result}, nil
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// OnDate возвращает момент времени t в календарный день date в локации loc
func (t TimeString) OnDate(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.minutes/60, t.minutes%60, 0, 0, loc)
}

// String возвращает представление в формате HH:MM
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}
