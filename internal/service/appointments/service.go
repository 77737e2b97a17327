package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей. metrics может быть nil.
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	var apt *domain.Appointment
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		apt, err = s.appointmentRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainAppointment(apt), nil
}

// Cancel отменяет запись. Отменить можно только pending и confirmed.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by %s", id, req.CancelledBy)

	if utf8.RuneCountInString(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	err := s.changeStatus(ctx, id, domain.StatusCancelled, optional(req.Reason), optional(req.CancelledBy))
	if errors.Is(err, ErrInvalidTransition) {
		return ErrCannotCancel
	}
	return err
}

// UpdateStatus меняет статус записи по правилам переходов; финальные статусы не меняются.
// Повторная установка текущего статуса ничего не делает.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s by %s", id, req.Status, req.Actor)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.changeStatus(ctx, id, newStatus, req.Reason, optional(req.Actor))
}

// changeStatus читает запись с блокировкой, проверяет переход и сохраняет новый статус
func (s *Service) changeStatus(ctx context.Context, id string, status domain.AppointmentStatus, reason, actor *string) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		apt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, domain.ErrAppointmentNotFound) {
				s.logger.Warn("changeStatus: appointment id=%s not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("changeStatus: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: changeStatus - repository error: %w", ErrInternal, err)
		}

		if apt.Status == status {
			s.logger.Info("changeStatus: appointment id=%s already %s", id, status)
			return nil
		}

		if !apt.Status.CanTransitionTo(status) {
			s.logger.Warn("changeStatus: appointment id=%s cannot move from %s to %s", id, apt.Status, status)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, apt.Status, status)
		}

		if status != domain.StatusCancelled {
			reason, actor = nil, nil
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, status, reason, actor); err != nil {
			if errors.Is(err, domain.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("changeStatus: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: changeStatus - repository error: %w", ErrInternal, err)
		}

		s.logger.Info("changeStatus: appointment id=%s moved from %s to %s", id, apt.Status, status)
		return nil
	})
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return ptr.Ptr(s)
}
