package validate_time

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
	"github.com/m04kA/SMC-SalonAvailability/pkg/types"
)

const (
	msgValid          = "Appointment time is within operating hours"
	msgBranchNotFound = "Branch not found"
	msgError          = "Error validating appointment time"
)

// UseCase проверяет время записи по часам работы, сменам мастеров и календарю филиала
type UseCase struct {
	branchRepo   BranchRepository
	calendarRepo CalendarRepository
	scheduleRepo ScheduleRepository
	loc          *time.Location
	logger       Logger
}

// NewUseCase loc - часовой пояс салона
func NewUseCase(
	branchRepo BranchRepository,
	calendarRepo CalendarRepository,
	scheduleRepo ScheduleRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		branchRepo:   branchRepo,
		calendarRepo: calendarRepo,
		scheduleRepo: scheduleRepo,
		loc:          loc,
		logger:       logger,
	}
}

// Execute проверяет по порядку: филиал, смену мастера или часы филиала на день недели,
// праздники и закрытия календаря, начало не раньше открытия, конец не позже закрытия.
// Смена мастера важнее часов филиала, особые часы из календаря важнее обоих.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req == nil || strings.TrimSpace(req.BranchID) == "" {
		return nil, fmt.Errorf("%w: branchID is required", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	start := req.Start.In(uc.loc)
	minutes := req.DurationMinutes
	if minutes <= 0 {
		minutes = domain.DefaultDurationMinutes
	}
	weekday := domain.WeekdayName(start)

	uc.logger.Info("ValidateTime: branch=%s, stylist=%q, start=%s, duration=%d",
		req.BranchID, ptr.Value(req.StylistID), start.Format(time.RFC3339), minutes)

	// 2. Филиал
	branch, err := uc.branchRepo.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, domain.ErrBranchNotFound) {
			return invalid(CodeBranchNotFound, msgBranchNotFound), nil
		}
		uc.logger.Error("ValidateTime: failed to get branch id=%s: %v", req.BranchID, err)
		return invalid(CodeError, msgError), nil
	}

	// 3. Смена мастера из действующей конфигурации
	var schedule *domain.ScheduleConfiguration
	if req.StylistID != nil && uc.scheduleRepo != nil {
		schedule, err = uc.scheduleRepo.GetActiveScheduleConfiguration(ctx, req.BranchID, start)
		if err != nil && !errors.Is(err, domain.ErrScheduleNotFound) {
			uc.logger.Error("ValidateTime: failed to get schedule for branch=%s: %v", req.BranchID, err)
			return invalid(CodeError, msgError), nil
		}
	}

	var (
		shift    domain.Shift
		hasShift bool
	)
	if req.StylistID != nil {
		shift, hasShift = schedule.ShiftFor(*req.StylistID, start)
	}

	var open, closeAt types.TimeString
	if hasShift {
		open, closeAt, err = shift.Bounds()
		if err != nil {
			uc.logger.Error("ValidateTime: malformed shift of stylist=%s: %v", *req.StylistID, err)
			return invalid(CodeError, msgError), nil
		}
	} else {
		// 4. Часы филиала на день недели; закрытый день проверяется только без смены
		hours, ok := branch.HoursFor(start)
		if !ok {
			return invalid(CodeNoHours, fmt.Sprintf("No operating hours configured for %s", weekday)), nil
		}
		if hours.IsClosed() {
			return invalid(CodeBranchClosed, fmt.Sprintf("Branch is closed on %ss", weekday)), nil
		}
		if hours.Open == "" || hours.Close == "" {
			return invalid(CodeNoHours, fmt.Sprintf("No operating hours configured for %s", weekday)), nil
		}
		open, closeAt, err = hours.Bounds()
		if err != nil {
			uc.logger.Error("ValidateTime: malformed hours for branch=%s: %v", req.BranchID, err)
			return invalid(CodeError, msgError), nil
		}
	}

	// 5. Календарь: праздник или закрытие отменяют день целиком
	entries, err := uc.calendarRepo.GetBranchCalendar(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("ValidateTime: failed to get calendar for branch=%s: %v", req.BranchID, err)
		return invalid(CodeError, msgError), nil
	}
	onDay := domain.EntriesOn(entries, start)
	if closure := domain.FindClosure(onDay); closure != nil {
		return invalid(CodeCalendarClosure, fmt.Sprintf(
			"%s - No appointments available on this date", closure.ClosureReason())), nil
	}
	if special := domain.FindSpecialHours(onDay); special != nil {
		open, closeAt, err = special.SpecialHours.Bounds()
		if err != nil {
			uc.logger.Error("ValidateTime: malformed special hours %s: %v", special.ID, err)
			return invalid(CodeError, msgError), nil
		}
	}

	// 6. Начало не раньше открытия
	startTime := types.NewTimeString(start)
	if startTime.IsBefore(open) {
		return invalid(CodeBeforeOpening, fmt.Sprintf(
			"Appointment starts before opening time (%s). Branch opens at %s on %ss.", open, open, weekday)), nil
	}

	// 7. Конец не позже закрытия; переход через полночь тоже считается опозданием
	endTime, err := startTime.AddMinutes(minutes)
	if err != nil || endTime.IsAfter(closeAt) {
		return invalid(CodeAfterClosing, fmt.Sprintf(
			"Appointment ends after closing time (%s). Branch closes at %s on %ss.", closeAt, closeAt, weekday)), nil
	}

	return &Response{IsValid: true, Code: CodeValid, Message: msgValid}, nil
}

func invalid(code Code, msg string) *Response {
	return &Response{IsValid: false, Code: code, Message: msg}
}
