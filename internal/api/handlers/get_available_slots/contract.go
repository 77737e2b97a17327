package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-SalonAvailability/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	ExecuteTeam(ctx context.Context, req *getAvailableSlots.TeamRequest) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
