package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/pkg/types"
)

// CalendarEntryType тип записи календаря филиала
type CalendarEntryType string

const (
	CalendarHoliday      CalendarEntryType = "holiday"
	CalendarClosure      CalendarEntryType = "closure"
	CalendarSpecialHours CalendarEntryType = "special_hours"
)

// CalendarStatusApproved только одобренные записи календаря влияют на расписание
const CalendarStatusApproved = "approved"

// Label human readable type name
func (t CalendarEntryType) Label() string {
	switch t {
	case CalendarHoliday:
		return "Holiday"
	case CalendarClosure:
		return "Temporary Closure"
	case CalendarSpecialHours:
		return "Special Hours"
	default:
		return string(t)
	}
}

// IsClosure returns true for holiday and closure entries
func (t CalendarEntryType) IsClosure() bool {
	return t == CalendarHoliday || t == CalendarClosure
}

// SpecialHours часы работы, заменяющие обычные
type SpecialHours struct {
	Open  string
	Close string
}

// Bounds parses open/close
func (h SpecialHours) Bounds() (types.TimeString, types.TimeString, error) {
	return parseBounds(h.Open, h.Close)
}

// CalendarEntry dated override of branch hours
type CalendarEntry struct {
	ID           string
	BranchID     string
	Date         time.Time // календарный день, время не учитывается
	Type         CalendarEntryType
	Title        string
	Status       string
	SpecialHours *SpecialHours
}

// ClosureReason "<Holiday|Temporary Closure>[ (title)]"
func (e *CalendarEntry) ClosureReason() string {
	if e.Title == "" {
		return e.Type.Label()
	}
	return fmt.Sprintf("%s (%s)", e.Type.Label(), e.Title)
}

// EntriesOn возвращает записи календаря на календарный день date
func EntriesOn(entries []CalendarEntry, date time.Time) []CalendarEntry {
	result := make([]CalendarEntry, 0)
	for _, e := range entries {
		if SameDay(e.Date, date) {
			result = append(result, e)
		}
	}
	return result
}

// FindClosure первая праздничная/закрывающая запись или nil
func FindClosure(entries []CalendarEntry) *CalendarEntry {
	for i := range entries {
		if entries[i].Type.IsClosure() {
			return &entries[i]
		}
	}
	return nil
}

// FindSpecialHours первая запись особых часов с заданными часами или nil
func FindSpecialHours(entries []CalendarEntry) *CalendarEntry {
	for i := range entries {
		if entries[i].Type == CalendarSpecialHours && entries[i].SpecialHours != nil {
			return &entries[i]
		}
	}
	return nil
}
