package cache

import (
	"context"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

// BranchSource хранилище филиалов и их календарей, которое кэшируется
type BranchSource interface {
	GetBranch(ctx context.Context, id string) (*domain.Branch, error)
	GetBranchCalendar(ctx context.Context, branchID string) ([]domain.CalendarEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
