package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/pkg/types"
)

// DayHours часы работы филиала в один день недели
type DayHours struct {
	Open   string // HH:MM
	Close  string // HH:MM
	IsOpen *bool  // nil - поле не задано, тогда смотрим на устаревшее Closed
	Closed bool
}

// IsClosed returns true if the day is explicitly closed
func (h DayHours) IsClosed() bool {
	if h.IsOpen != nil {
		return !*h.IsOpen
	}
	return h.Closed
}

// Bounds parses open/close
func (h DayHours) Bounds() (types.TimeString, types.TimeString, error) {
	return parseBounds(h.Open, h.Close)
}

// Branch salon location
type Branch struct {
	ID             string
	Name           string
	Address        string
	OperatingHours map[string]DayHours // ключ - день недели в нижнем регистре ("monday")
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HoursFor returns operating hours for the weekday of date
func (b *Branch) HoursFor(date time.Time) (DayHours, bool) {
	hours, ok := b.OperatingHours[WeekdayKey(date)]
	return hours, ok
}

// WeekdayKey ключ дня недели для расписаний ("monday")
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// WeekdayName имя дня недели для сообщений ("Monday")
func WeekdayName(date time.Time) string {
	return date.Weekday().String()
}

func parseBounds(from, to string) (types.TimeString, types.TimeString, error) {
	o, err := types.NewTimeStringFromString(from)
	if err != nil {
		return types.TimeString{}, types.TimeString{}, err
	}
	c, err := types.NewTimeStringFromString(to)
	if err != nil {
		return types.TimeString{}, types.TimeString{}, err
	}
	return o, c, nil
}
