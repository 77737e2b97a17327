package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonAvailability/pkg/types"
)

// Shift смена мастера в один день недели
type Shift struct {
	Start string // HH:MM
	End   string // HH:MM
}

// Bounds parses start/end
func (s Shift) Bounds() (types.TimeString, types.TimeString, error) {
	return parseBounds(s.Start, s.End)
}

// IsSet returns true if both ends are present
func (s Shift) IsSet() bool {
	return s.Start != "" && s.End != ""
}

// ScheduleConfiguration план смен филиала, действующий с StartDate
type ScheduleConfiguration struct {
	ID        string
	BranchID  string
	Name      string
	StartDate time.Time
	IsActive  bool
	Shifts    map[string]map[string]Shift // stylistID -> weekday key -> shift
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftFor returns the stylist's shift on the weekday of date
func (c *ScheduleConfiguration) ShiftFor(stylistID string, date time.Time) (Shift, bool) {
	if c == nil || stylistID == "" {
		return Shift{}, false
	}
	days, ok := c.Shifts[stylistID]
	if !ok {
		return Shift{}, false
	}
	shift, ok := days[WeekdayKey(date)]
	if !ok || !shift.IsSet() {
		return Shift{}, false
	}
	return shift, true
}

// AppliesOn returns true if the configuration is active and already started on date
func (c *ScheduleConfiguration) AppliesOn(date time.Time) bool {
	if !c.IsActive || c.StartDate.IsZero() {
		return false
	}
	y, m, d := c.StartDate.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = date.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !start.After(target)
}

// SelectActive выбирает действующую на date конфигурацию: активную, с самым поздним StartDate <= date
func SelectActive(configs []ScheduleConfiguration, date time.Time) *ScheduleConfiguration {
	var best *ScheduleConfiguration
	for i := range configs {
		c := &configs[i]
		if !c.AppliesOn(date) {
			continue
		}
		if best == nil || c.StartDate.After(best.StartDate) {
			best = c
		}
	}
	return best
}
