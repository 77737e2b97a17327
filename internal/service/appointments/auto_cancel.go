package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

// Метки метрики автоотмены
const (
	autoCancelLabelPastDue = "past_due"
	autoCancelLabelExpired = "expired"
)

// AutoCancelStale отменяет зависшие pending записи по всем филиалам:
// время которых прошло больше чем на 2 часа, либо созданные больше 7 дней назад.
// За один проход обрабатывается не больше 5 записей.
func (s *Service) AutoCancelStale(ctx context.Context) (*models.AutoCancelResult, error) {
	now := s.timeProvider.Now()
	pending := []domain.AppointmentStatus{domain.StatusPending}

	// 1. Прошедшие записи (не позже суток назад)
	pastDueBefore := now.Add(-domain.AutoCancelPastDueLookup)
	pastDue, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		To:       &pastDueBefore,
		Statuses: pending,
		Limit:    domain.AutoCancelQueryLimit,
	})
	if err != nil {
		s.logger.Error("AutoCancelStale: failed to list past due appointments: %v", err)
		return nil, err
	}

	// 2. Давно созданные записи
	createdBefore := now.Add(-domain.AutoCancelExpiredAfter)
	expired, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{
		CreatedBefore: &createdBefore,
		Statuses:      pending,
		Limit:         domain.AutoCancelQueryLimit,
	})
	if err != nil {
		s.logger.Error("AutoCancelStale: failed to list expired appointments: %v", err)
		return nil, err
	}

	// 3. Объединяем без повторов и ограничиваем проход
	candidates := dedupe(append(pastDue, expired...))
	if len(candidates) > domain.AutoCancelMaxPerRun {
		candidates = candidates[:domain.AutoCancelMaxPerRun]
	}

	result := &models.AutoCancelResult{
		Checked:   len(candidates),
		Cancelled: make([]models.AutoCancelled, 0),
	}

	// 4. Отменяем каждую отдельно; ошибка одной не останавливает остальные
	for _, apt := range candidates {
		reason, label, ok := staleReason(apt, now)
		if !ok {
			continue
		}

		err := s.changeStatus(ctx, apt.ID, domain.StatusCancelled, ptr.Ptr(reason), ptr.Ptr(domain.SystemActor))
		if err != nil {
			s.logger.Error("AutoCancelStale: failed to cancel appointment id=%s: %v", apt.ID, err)
			result.Failed++
			continue
		}

		if s.metrics != nil {
			s.metrics.RecordAutoCancel(label)
		}
		result.Cancelled = append(result.Cancelled, models.AutoCancelled{ID: apt.ID, Reason: reason})
	}

	if len(result.Cancelled) > 0 || result.Failed > 0 {
		s.logger.Info("AutoCancelStale: checked=%d, cancelled=%d, failed=%d",
			result.Checked, len(result.Cancelled), result.Failed)
	}
	return result, nil
}

// RunAutoCancel запускает AutoCancelStale сразу и затем с интервалом interval до отмены ctx
func (s *Service) RunAutoCancel(ctx context.Context, interval time.Duration) {
	s.logger.Info("RunAutoCancel: started, interval=%s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.AutoCancelStale(ctx); err != nil {
			s.logger.Error("RunAutoCancel: pass failed: %v", err)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("RunAutoCancel: stopped")
			return
		case <-ticker.C:
		}
	}
}

// staleReason определяет причину автоотмены.
// Прошедшее время важнее срока жизни заявки.
func staleReason(apt *domain.Appointment, now time.Time) (string, string, bool) {
	if apt.Status != domain.StatusPending {
		return "", "", false
	}
	if now.Sub(apt.AppointmentDate) > domain.AutoCancelPastDueAfter {
		return domain.AutoCancelReasonPastDue, autoCancelLabelPastDue, true
	}
	if now.Sub(apt.CreatedAt) > domain.AutoCancelExpiredAfter {
		return domain.AutoCancelReasonExpired, autoCancelLabelExpired, true
	}
	return "", "", false
}

func dedupe(appointments []*domain.Appointment) []*domain.Appointment {
	seen := make(map[string]struct{}, len(appointments))
	result := make([]*domain.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if _, ok := seen[apt.ID]; ok {
			continue
		}
		seen[apt.ID] = struct{}{}
		result = append(result, apt)
	}
	return result
}
