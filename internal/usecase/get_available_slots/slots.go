package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

const (
	hoursSourceBranch  = "branch"
	hoursSourceShift   = "shift"
	hoursSourceSpecial = "special_hours"
)

// resolveWorkingHours определяет часы работы на день.
// Смена мастера из действующей конфигурации важнее часов филиала.
// Закрытый день филиала проверяется только когда смены нет.
func resolveWorkingHours(
	branch *domain.Branch,
	schedule *domain.ScheduleConfiguration,
	stylistID *string,
	day time.Time,
) (workingHours, *string, error) {
	if stylistID != nil {
		if shift, ok := schedule.ShiftFor(*stylistID, day); ok {
			open, closeAt, err := shift.Bounds()
			if err != nil {
				return workingHours{}, nil, fmt.Errorf("shift of stylist %s: %w", *stylistID, err)
			}
			return workingHours{open: open, close: closeAt, source: hoursSourceShift}, nil, nil
		}
	}

	hours, ok := branch.HoursFor(day)
	if !ok {
		return workingHours{}, ptr.Ptr(MsgNoOperatingHours), nil
	}
	if hours.IsClosed() {
		return workingHours{}, ptr.Ptr(fmt.Sprintf(msgBranchClosedFormat, domain.WeekdayName(day))), nil
	}
	if hours.Open == "" || hours.Close == "" {
		return workingHours{}, ptr.Ptr(MsgNoOperatingHours), nil
	}

	open, closeAt, err := hours.Bounds()
	if err != nil {
		return workingHours{}, nil, fmt.Errorf("operating hours of branch %s: %w", branch.ID, err)
	}
	return workingHours{open: open, close: closeAt, source: hoursSourceBranch}, nil, nil
}

// applyCalendar накладывает календарь на часы работы.
// Праздник или закрытие отменяют день целиком, особые часы заменяют окно работы.
func applyCalendar(entries []domain.CalendarEntry, day time.Time, wh workingHours) (workingHours, *string, error) {
	onDay := domain.EntriesOn(entries, day)

	if closure := domain.FindClosure(onDay); closure != nil {
		return workingHours{}, ptr.Ptr(fmt.Sprintf(msgCalendarFormat, closure.ClosureReason())), nil
	}

	if special := domain.FindSpecialHours(onDay); special != nil {
		open, closeAt, err := special.SpecialHours.Bounds()
		if err != nil {
			return workingHours{}, nil, fmt.Errorf("special hours %s: %w", special.ID, err)
		}
		return workingHours{open: open, close: closeAt, source: hoursSourceSpecial}, nil, nil
	}

	return wh, nil, nil
}

// bookingFloor возвращает now + 2ч, если day - сегодня, иначе nil
func bookingFloor(day, now time.Time) *time.Time {
	if !domain.SameDay(day, now) {
		return nil
	}
	return ptr.Ptr(now.Add(domain.AdvanceBookingWindow))
}

// generateSlots строит сетку слотов с шагом 30 минут от открытия, пока начало слота раньше закрытия.
// Последний слот может заканчиваться после закрытия.
func generateSlots(
	wh workingHours,
	day time.Time,
	loc *time.Location,
	duration time.Duration,
	floor *time.Time,
	stylistID *string,
	appointments []*domain.Appointment,
) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	for current := wh.open; current.IsBefore(wh.close); {
		start := current.OnDate(day, loc)
		slots = append(slots, decideSlot(start, start.Add(duration), floor, stylistID, appointments))

		next, err := current.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return slots
}

// decideSlot решает доступность слота [start, end).
// Порядок: окно предварительной записи, затем конфликт с записями мастера.
// Без мастера конфликты не проверяются.
func decideSlot(start, end time.Time, floor *time.Time, stylistID *string, appointments []*domain.Appointment) domain.TimeSlot {
	if floor != nil && start.Before(*floor) {
		return domain.TimeSlot{Time: start, Available: false, Reason: domain.SlotReasonAdvanceWindow}
	}

	if stylistID != nil {
		for _, apt := range appointments {
			if apt.BlocksStylist(*stylistID, start, end) {
				return domain.TimeSlot{Time: start, Available: false, Reason: domain.SlotReasonStylistBusy}
			}
		}
	}

	return domain.TimeSlot{Time: start, Available: true}
}

// normalizeDay приводит дату к началу календарного дня в часовом поясе салона
func normalizeDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// normalizeDuration длительность услуги, 60 минут для неположительных значений
func normalizeDuration(minutes int) int {
	if minutes <= 0 {
		return domain.DefaultDurationMinutes
	}
	return minutes
}

// slotKey ключ слота для сравнения по точному времени
func slotKey(t time.Time) int64 {
	return t.Unix()
}
