package get_available_slots

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/metrics"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

// UseCase вычисляет доступные слоты записи на день
type UseCase struct {
	branchRepo      BranchRepository
	calendarRepo    CalendarRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	loc             *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
// loc - часовой пояс салона, в нем считаются календарные дни и часы работы.
func NewUseCase(
	branchRepo BranchRepository,
	calendarRepo CalendarRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	metrics MetricsRecorder,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		branchRepo:      branchRepo,
		calendarRepo:    calendarRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		loc:             loc,
		logger:          logger,
	}
}

// Execute вычисляет слоты для одного мастера (или любого, если StylistID == nil).
// Ошибка возвращается только для некорректного запроса, остальное - через Response.Message.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := normalizeDay(req.Date, uc.loc)
	duration := time.Duration(normalizeDuration(req.ServiceDurationMinutes)) * time.Minute
	stylist := ptr.Value(req.StylistID)

	uc.logger.Info("GetAvailableSlots: branch=%s, stylist=%q, date=%s, duration=%s",
		req.BranchID, stylist, day.Format(domain.DateFormat), duration)

	// 2. Получаем филиал
	branch, err := uc.branchRepo.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, domain.ErrBranchNotFound) {
			uc.logger.Warn("GetAvailableSlots: branch id=%s not found", req.BranchID)
			return uc.blocked(req, day, MsgBranchNotFound), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get branch id=%s: %v", req.BranchID, err)
		return uc.failed(req, day), nil
	}

	// 3. Смены мастеров нужны только для конкретного мастера
	var schedule *domain.ScheduleConfiguration
	if req.StylistID != nil {
		schedule, err = uc.scheduleRepo.GetActiveScheduleConfiguration(ctx, req.BranchID, day)
		if err != nil && !errors.Is(err, domain.ErrScheduleNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get schedule for branch=%s: %v", req.BranchID, err)
			return uc.failed(req, day), nil
		}
	}

	// 4. Часы работы: смена мастера или часы филиала
	hours, msg, err := resolveWorkingHours(branch, schedule, req.StylistID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: malformed hours: %v", err)
		return uc.failed(req, day), nil
	}
	if msg != nil {
		uc.logger.Info("GetAvailableSlots: branch=%s date=%s: %s", req.BranchID, day.Format(domain.DateFormat), *msg)
		return uc.blocked(req, day, *msg), nil
	}

	// 5. Календарь: праздники, закрытия, особые часы
	entries, err := uc.calendarRepo.GetBranchCalendar(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get calendar for branch=%s: %v", req.BranchID, err)
		return uc.failed(req, day), nil
	}
	hours, msg, err = applyCalendar(entries, day, hours)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: malformed calendar: %v", err)
		return uc.failed(req, day), nil
	}
	if msg != nil {
		uc.logger.Info("GetAvailableSlots: branch=%s date=%s: %s", req.BranchID, day.Format(domain.DateFormat), *msg)
		return uc.blocked(req, day, *msg), nil
	}

	// 6. Граница предварительной записи для сегодняшнего дня
	floor := bookingFloor(day, uc.timeProvider.Now().In(uc.loc))

	// 7. Занимающие время записи филиала за день
	appointments, err := uc.appointmentRepo.List(ctx, domain.DayFilter(&req.BranchID, day))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for branch=%s: %v", req.BranchID, err)
		return uc.failed(req, day), nil
	}

	// 8. Генерируем слоты и решаем доступность каждого
	slots := generateSlots(hours, day, uc.loc, duration, floor, req.StylistID, appointments)

	available := domain.CountAvailable(slots)
	uc.logger.Info("GetAvailableSlots: branch=%s date=%s hours=%s-%s (%s): %d slots, %d available",
		req.BranchID, day.Format(domain.DateFormat), hours.open, hours.close, hours.source, len(slots), available)

	if available == 0 {
		uc.record(metrics.SlotOutcomeNoAvailability)
	} else {
		uc.record(metrics.SlotOutcomeOK)
	}

	return &Response{
		BranchID: req.BranchID,
		Date:     day,
		Slots:    slots,
	}, nil
}

func (uc *UseCase) blocked(req *Request, day time.Time, msg string) *Response {
	uc.record(metrics.SlotOutcomeBlocked)
	return &Response{
		BranchID: req.BranchID,
		Date:     day,
		Slots:    []domain.TimeSlot{},
		Message:  ptr.Ptr(msg),
	}
}

func (uc *UseCase) failed(req *Request, day time.Time) *Response {
	uc.record(metrics.SlotOutcomeError)
	return &Response{
		BranchID: req.BranchID,
		Date:     day,
		Slots:    []domain.TimeSlot{},
		Message:  ptr.Ptr(MsgLoadFailed),
	}
}

func (uc *UseCase) record(outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordSlotQuery(outcome)
	}
}
