package create_appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/internal/usecase/check_stylist"
	"github.com/m04kA/SMC-SalonAvailability/internal/usecase/validate_time"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	timeValidator   TimeValidator
	stylistChecker  StylistChecker
	txManager       TransactionManager
	idGenerator     IDGenerator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	timeValidator TimeValidator,
	stylistChecker StylistChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		timeValidator:   timeValidator,
		stylistChecker:  stylistChecker,
		txManager:       txManager,
		idGenerator:     UUIDGenerator{},
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка мастеров и вставка выполняются в одной сериализуемой транзакции,
// чтобы два клиента не заняли одно и то же время.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	duration := totalDuration(req)
	assignment := buildAssignment(req)

	uc.logger.Info("CreateAppointment: branch=%s, start=%s, duration=%d, stylists=%v",
		req.BranchID, req.Start.Format(time.RFC3339), duration, assignment.StylistIDs())

	// 2. Граница предварительной записи
	now := uc.timeProvider.Now()
	if req.Start.Before(now.Add(domain.AdvanceBookingWindow)) {
		uc.logger.Warn("CreateAppointment: start %s is within advance window", req.Start.Format(time.RFC3339))
		return nil, reject(ErrTooLateToBook,
			"Appointments must be booked at least %d hours in advance", int(domain.AdvanceBookingWindow.Hours()))
	}

	// 3. Часы работы, смены мастеров и календарь филиала
	warning, err := uc.checkHours(ctx, req, duration, assignment.StylistIDs())
	if err != nil {
		return nil, err
	}

	var result *domain.Appointment

	// 4. Проверка мастеров и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Каждый задействованный мастер должен быть свободен на весь интервал
		for _, stylistID := range assignment.StylistIDs() {
			resp, err := uc.stylistChecker.Execute(txCtx, &check_stylist.Request{
				StylistID:       ptr.Ptr(stylistID),
				Start:           req.Start,
				DurationMinutes: duration,
			})
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to check stylist=%s: %v", stylistID, err)
				return fmt.Errorf("%w: failed to check stylist: %w", ErrInternal, err)
			}
			if !resp.Free {
				uc.logger.Warn("CreateAppointment: stylist=%s busy, conflicts with appointment=%s",
					stylistID, ptr.Value(resp.ConflictingAppointmentID))
				return reject(ErrStylistBusy, "Stylist %s already has an appointment at this time", stylistID)
			}
		}

		// 4.2. Создаем запись
		apt := &domain.Appointment{
			ID:              uc.idGenerator.NewID(),
			BranchID:        req.BranchID,
			ClientID:        req.ClientID,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			AppointmentDate: req.Start,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			Assignment:      assignment,
			Notes:           req.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	return &Response{
		Appointment: result,
		Warning:     warning,
	}, nil
}

// checkHours проверяет интервал по часам каждого мастера: смена мастера важнее часов филиала.
// Без мастеров проверяются часы филиала. Возвращает предупреждение, если запись выходит за закрытие.
func (uc *UseCase) checkHours(ctx context.Context, req *Request, duration int, stylistIDs []string) (*string, error) {
	targets := make([]*string, 0, len(stylistIDs))
	for _, id := range stylistIDs {
		targets = append(targets, ptr.Ptr(id))
	}
	if len(targets) == 0 {
		targets = append(targets, nil)
	}

	var warning *string
	for _, stylistID := range targets {
		check, err := uc.timeValidator.Execute(ctx, &validate_time.Request{
			BranchID:        req.BranchID,
			StylistID:       stylistID,
			Start:           req.Start,
			DurationMinutes: duration,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to validate time: %v", err)
			return nil, fmt.Errorf("%w: failed to validate time: %w", ErrInternal, err)
		}

		switch check.Code {
		case validate_time.CodeValid:
		case validate_time.CodeAfterClosing:
			// Запись, выходящая за закрытие, принимается как pending на проверку персоналом
			uc.logger.Info("CreateAppointment: accepted for review: %s", check.Message)
			if warning == nil {
				warning = ptr.Ptr(check.Message)
			}
		case validate_time.CodeBranchNotFound:
			uc.logger.Warn("CreateAppointment: branch id=%s not found", req.BranchID)
			return nil, reject(ErrBranchNotFound, "%s", check.Message)
		case validate_time.CodeBeforeOpening:
			uc.logger.Warn("CreateAppointment: stylist=%q: %s", ptr.Value(stylistID), check.Message)
			return nil, reject(ErrOutsideHours, "%s", check.Message)
		case validate_time.CodeError:
			uc.logger.Error("CreateAppointment: time validation failed for branch=%s", req.BranchID)
			return nil, fmt.Errorf("%w: %s", ErrInternal, check.Message)
		default:
			uc.logger.Warn("CreateAppointment: stylist=%q: %s", ptr.Value(stylistID), check.Message)
			return nil, reject(ErrBranchClosed, "%s", check.Message)
		}
	}

	return warning, nil
}
