package get_available_slots

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

var errStorage = errors.New("connection reset")

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBranches struct {
	branches map[string]*domain.Branch
	err      error
}

func (f *fakeBranches) GetBranch(_ context.Context, id string) (*domain.Branch, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.branches[id]
	if !ok {
		return nil, domain.ErrBranchNotFound
	}
	return b, nil
}

type fakeCalendar struct {
	entries []domain.CalendarEntry
	err     error
}

func (f *fakeCalendar) GetBranchCalendar(_ context.Context, branchID string) ([]domain.CalendarEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]domain.CalendarEntry, 0)
	for _, e := range f.entries {
		if e.BranchID == branchID {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeSchedules struct {
	configs []domain.ScheduleConfiguration
	err     error
}

func (f *fakeSchedules) GetActiveScheduleConfiguration(_ context.Context, branchID string, date time.Time) (*domain.ScheduleConfiguration, error) {
	if f.err != nil {
		return nil, f.err
	}
	own := make([]domain.ScheduleConfiguration, 0)
	for _, c := range f.configs {
		if c.BranchID == branchID {
			own = append(own, c)
		}
	}
	if active := domain.SelectActive(own, date); active != nil {
		return active, nil
	}
	return nil, domain.ErrScheduleNotFound
}

// fakeAppointments фильтрует как настоящее хранилище
type fakeAppointments struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	err          error
	calls        int
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if filter.BranchID != nil && a.BranchID != *filter.BranchID {
			continue
		}
		if filter.From != nil && a.AppointmentDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.AppointmentDate.Before(*filter.To) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, a.Status) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (f *fakeRecorder) RecordSlotQuery(outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, outcome)
}

// weekHours понедельник-суббота 09:00-18:00, воскресенье не настроено
func weekHours() map[string]domain.DayHours {
	hours := make(map[string]domain.DayHours)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		hours[day] = domain.DayHours{Open: "09:00", Close: "18:00"}
	}
	return hours
}

type fixture struct {
	branches     *fakeBranches
	calendar     *fakeCalendar
	schedules    *fakeSchedules
	appointments *fakeAppointments
	recorder     *fakeRecorder
}

func newFixture() *fixture {
	return &fixture{
		branches: &fakeBranches{branches: map[string]*domain.Branch{
			"b1": {ID: "b1", Name: "Main", OperatingHours: weekHours()},
		}},
		calendar:     &fakeCalendar{},
		schedules:    &fakeSchedules{},
		appointments: &fakeAppointments{},
		recorder:     &fakeRecorder{},
	}
}

func (f *fixture) useCase(now time.Time, loc *time.Location) *UseCase {
	uc := NewUseCase(f.branches, f.calendar, f.schedules, f.appointments, f.recorder, loc, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func appointmentAt(id, stylistID string, start time.Time, minutes int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		BranchID:        "b1",
		AppointmentDate: start,
		DurationMinutes: minutes,
		Status:          status,
		Assignment:      domain.SingleAssignment{StylistID: stylistID},
	}
}

func slotTimes(slots []domain.TimeSlot, loc *time.Location) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.Time.In(loc).Format(domain.TimeFormat)
	}
	return result
}

func availableTimes(slots []domain.TimeSlot, loc *time.Location) []string {
	result := make([]string, 0)
	for _, s := range slots {
		if s.Available {
			result = append(result, s.Time.In(loc).Format(domain.TimeFormat))
		}
	}
	return result
}
