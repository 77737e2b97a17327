package validate_time

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

// BranchRepository источник часов работы филиала
type BranchRepository interface {
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
