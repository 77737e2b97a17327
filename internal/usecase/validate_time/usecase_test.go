package validate_time

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBranches struct {
	branch *domain.Branch
	err    error
}

func (f *fakeBranches) GetBranch(_ context.Context, id string) (*domain.Branch, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.branch == nil || f.branch.ID != id {
		return nil, domain.ErrBranchNotFound
	}
	return f.branch, nil
}

type fakeCalendar struct {
	entries []domain.CalendarEntry
	err     error
}

func (f *fakeCalendar) GetBranchCalendar(context.Context, string) ([]domain.CalendarEntry, error) {
	return f.entries, f.err
}

type fakeSchedules struct {
	schedule *domain.ScheduleConfiguration
	err      error
}

func (f *fakeSchedules) GetActiveScheduleConfiguration(context.Context, string, time.Time) (*domain.ScheduleConfiguration, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.schedule == nil {
		return nil, domain.ErrScheduleNotFound
	}
	return f.schedule, nil
}

func TestExecute(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return monday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	branch := &domain.Branch{
		ID: "b1",
		OperatingHours: map[string]domain.DayHours{
			"monday":  {Open: "09:00", Close: "18:00", IsOpen: ptr.Ptr(true)},
			"tuesday": {Open: "09:00", Close: "18:00", IsOpen: ptr.Ptr(false)},
		},
	}

	schedule := &domain.ScheduleConfiguration{
		ID: "cfg", BranchID: "b1", IsActive: true, StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Shifts: map[string]map[string]domain.Shift{"S1": {
			"monday":    {Start: "10:00", End: "20:00"},
			"tuesday":   {Start: "09:00", End: "13:00"},
			"wednesday": {Start: "07:00", End: "12:00"},
		}},
	}

	tests := []struct {
		name        string
		branchID    string
		stylistID   *string
		start       time.Time
		duration    int
		calendar    []domain.CalendarEntry
		branchErr   error
		calErr      error
		scheduleErr error
		wantValid bool
		wantCode  Code
		wantMsg   string
	}{
		{
			name:      "within hours",
			branchID:  "b1",
			start:     at(10, 0),
			duration:  60,
			wantValid: true,
			wantCode:  CodeValid,
			wantMsg:   "Appointment time is within operating hours",
		},
		{
			name:      "ends exactly at closing",
			branchID:  "b1",
			start:     at(17, 0),
			wantValid: true,
			wantCode:  CodeValid,
		},
		{
			name:     "branch not found",
			branchID: "nope",
			start:    at(10, 0),
			wantCode: CodeBranchNotFound,
			wantMsg:  "Branch not found",
		},
		{
			name:     "no hours for weekday",
			branchID: "b1",
			start:    monday.AddDate(0, 0, 2).Add(10 * time.Hour),
			wantCode: CodeNoHours,
			wantMsg:  "No operating hours configured for Wednesday",
		},
		{
			name:     "closed weekday",
			branchID: "b1",
			start:    monday.AddDate(0, 0, 1).Add(10 * time.Hour),
			wantCode: CodeBranchClosed,
			wantMsg:  "Branch is closed on Tuesdays",
		},
		{
			name:     "starts before opening",
			branchID: "b1",
			start:    at(8, 30),
			duration: 60,
			wantCode: CodeBeforeOpening,
			wantMsg:  "Appointment starts before opening time (09:00). Branch opens at 09:00 on Mondays.",
		},
		{
			name:     "ends after closing",
			branchID: "b1",
			start:    at(17, 30),
			duration: 60,
			wantCode: CodeAfterClosing,
			wantMsg:  "Appointment ends after closing time (18:00). Branch closes at 18:00 on Mondays.",
		},
		{
			name:     "holiday",
			branchID: "b1",
			start:    at(10, 0),
			calendar: []domain.CalendarEntry{
				{ID: "c1", Date: monday, Type: domain.CalendarHoliday, Title: "Founders Day", Status: domain.CalendarStatusApproved},
			},
			wantCode: CodeCalendarClosure,
			wantMsg:  "Holiday (Founders Day) - No appointments available on this date",
		},
		{
			name:     "holiday wins over running past closing",
			branchID: "b1",
			start:    at(17, 30),
			duration: 60,
			calendar: []domain.CalendarEntry{
				{ID: "c1", Date: monday, Type: domain.CalendarHoliday, Title: "Founders Day", Status: domain.CalendarStatusApproved},
			},
			wantCode: CodeCalendarClosure,
			wantMsg:  "Holiday (Founders Day) - No appointments available on this date",
		},
		{
			name:     "closure wins over starting before opening",
			branchID: "b1",
			start:    at(8, 0),
			calendar: []domain.CalendarEntry{
				{ID: "c1", Date: monday, Type: domain.CalendarClosure, Status: domain.CalendarStatusApproved},
			},
			wantCode: CodeCalendarClosure,
		},
		{
			name:      "shift starts before branch opens",
			branchID:  "b1",
			stylistID: ptr.Ptr("S1"),
			start:     monday.AddDate(0, 0, 2).Add(7 * time.Hour),
			duration:  60,
			wantValid: true,
			wantCode:  CodeValid,
		},
		{
			name:      "shift on closed weekday",
			branchID:  "b1",
			stylistID: ptr.Ptr("S1"),
			start:     monday.AddDate(0, 0, 1).Add(9 * time.Hour),
			wantValid: true,
			wantCode:  CodeValid,
		},
		{
			name:      "shift end bounds the appointment",
			branchID:  "b1",
			stylistID: ptr.Ptr("S1"),
			start:     monday.AddDate(0, 0, 2).Add(11*time.Hour + 30*time.Minute),
			duration:  60,
			wantCode:  CodeAfterClosing,
			wantMsg:   "Appointment ends after closing time (12:00). Branch closes at 12:00 on Wednesdays.",
		},
		{
			name:      "shift start bounds the appointment",
			branchID:  "b1",
			stylistID: ptr.Ptr("S1"),
			start:     at(9, 0),
			wantCode:  CodeBeforeOpening,
		},
		{
			name:      "stylist without shift falls back to branch hours",
			branchID:  "b1",
			stylistID: ptr.Ptr("S2"),
			start:     monday.AddDate(0, 0, 2).Add(7 * time.Hour),
			wantCode:  CodeNoHours,
		},
		{
			name:      "holiday wins over shift",
			branchID:  "b1",
			stylistID: ptr.Ptr("S1"),
			start:     monday.AddDate(0, 0, 2).Add(7 * time.Hour),
			calendar: []domain.CalendarEntry{
				{ID: "c1", Date: monday.AddDate(0, 0, 2), Type: domain.CalendarHoliday, Status: domain.CalendarStatusApproved},
			},
			wantCode: CodeCalendarClosure,
		},
		{
			name:        "schedule read error",
			branchID:    "b1",
			stylistID:   ptr.Ptr("S1"),
			start:       at(10, 0),
			scheduleErr: errors.New("unavailable"),
			wantCode:    CodeError,
			wantMsg:     "Error validating appointment time",
		},
		{
			name:     "closure on another day is ignored",
			branchID: "b1",
			start:    at(10, 0),
			calendar: []domain.CalendarEntry{
				{ID: "c1", Date: monday.AddDate(0, 0, 7), Type: domain.CalendarClosure, Status: domain.CalendarStatusApproved},
			},
			wantValid: true,
			wantCode:  CodeValid,
		},
		{
			name:     "special hours narrow the day",
			branchID: "b1",
			start:    at(15, 0),
			calendar: []domain.CalendarEntry{
				{ID: "c1", Date: monday, Type: domain.CalendarSpecialHours, Status: domain.CalendarStatusApproved,
					SpecialHours: &domain.SpecialHours{Open: "10:00", Close: "15:30"}},
			},
			wantCode: CodeAfterClosing,
			wantMsg:  "Appointment ends after closing time (15:30). Branch closes at 15:30 on Mondays.",
		},
		{
			name:      "branch read error",
			branchID:  "b1",
			start:     at(10, 0),
			branchErr: errors.New("unavailable"),
			wantCode:  CodeError,
			wantMsg:   "Error validating appointment time",
		},
		{
			name:     "calendar read error",
			branchID: "b1",
			start:    at(10, 0),
			calErr:   errors.New("unavailable"),
			wantCode: CodeError,
			wantMsg:  "Error validating appointment time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(
				&fakeBranches{branch: branch, err: tt.branchErr},
				&fakeCalendar{entries: tt.calendar, err: tt.calErr},
				&fakeSchedules{schedule: schedule, err: tt.scheduleErr},
				time.UTC,
				nopLogger{},
			)

			resp, err := uc.Execute(context.Background(), &Request{
				BranchID:        tt.branchID,
				StylistID:       tt.stylistID,
				Start:           tt.start,
				DurationMinutes: tt.duration,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, resp.IsValid)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBranches{}, &fakeCalendar{}, &fakeSchedules{}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Start: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BranchID: "b1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
