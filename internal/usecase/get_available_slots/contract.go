package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

// BranchRepository источник часов работы филиала
type BranchRepository interface {
	// GetBranch возвращает domain.ErrBranchNotFound, если филиала нет
	GetBranch(ctx context.Context, id string) (*domain.Branch, error)
}

// CalendarRepository источник праздников, закрытий и особых часов
type CalendarRepository interface {
	GetBranchCalendar(ctx context.Context, branchID string) ([]domain.CalendarEntry, error)
}

// ScheduleRepository источник смен мастеров
type ScheduleRepository interface {
	// GetActiveScheduleConfiguration возвращает domain.ErrScheduleNotFound, если действующей конфигурации нет
	GetActiveScheduleConfiguration(ctx context.Context, branchID string, date time.Time) (*domain.ScheduleConfiguration, error)
}

// AppointmentRepository источник записей на день
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// MetricsRecorder учитывает исходы вычисления слотов
type MetricsRecorder interface {
	RecordSlotQuery(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
