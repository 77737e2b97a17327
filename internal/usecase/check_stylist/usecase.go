package check_stylist

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

// UseCase проверяет, свободен ли мастер, по записям всех филиалов за день
type UseCase struct {
	appointmentRepo AppointmentRepository
	loc             *time.Location
	logger          Logger
}

// NewUseCase loc - часовой пояс салона, в нем определяется календарный день записи
func NewUseCase(appointmentRepo AppointmentRepository, loc *time.Location, logger Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		loc:             loc,
		logger:          logger,
	}
}

// IsStylistFree возвращает true, если у мастера нет пересекающихся занимающих записей
func (uc *UseCase) IsStylistFree(ctx context.Context, req *Request) (bool, error) {
	resp, err := uc.Execute(ctx, req)
	if err != nil {
		return false, err
	}
	return resp.Free, nil
}

// Execute выполняет проверку и возвращает первую конфликтующую запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Мастер не назначен - не блокирует
	if req == nil || req.StylistID == nil || *req.StylistID == "" {
		return &Response{Free: true}, nil
	}
	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	stylistID := *req.StylistID
	start := req.Start.In(uc.loc)
	minutes := req.DurationMinutes
	if minutes <= 0 {
		minutes = domain.DefaultDurationMinutes
	}
	end := start.Add(time.Duration(minutes) * time.Minute)

	// 2. Занимающие записи за календарный день по всем филиалам
	appointments, err := uc.appointmentRepo.List(ctx, domain.DayFilter(nil, start))
	if err != nil {
		uc.logger.Error("CheckStylist: failed to list appointments for stylist=%s: %v", stylistID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
	}

	// 3. Ищем пересечение, пропуская переносимую запись
	exclude := ptr.Value(req.ExcludeAppointmentID)
	for _, apt := range appointments {
		if exclude != "" && apt.ID == exclude {
			continue
		}
		if apt.BlocksStylist(stylistID, start, end) {
			uc.logger.Info("CheckStylist: stylist=%s busy at %s, conflicts with appointment=%s",
				stylistID, start.Format(time.RFC3339), apt.ID)
			return &Response{Free: false, ConflictingAppointmentID: ptr.Ptr(apt.ID)}, nil
		}
	}

	return &Response{Free: true}, nil
}
