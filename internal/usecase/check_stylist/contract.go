package check_stylist

import (
	"context"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

// AppointmentRepository источник записей. Внутри транзакции выборка блокирует строки.
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
