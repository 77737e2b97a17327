package validate_time

import (
	"context"

	validateTime "github.com/m04kA/SMC-SalonAvailability/internal/usecase/validate_time"
)

type ValidateTimeUseCase interface {
	Execute(ctx context.Context, req *validateTime.Request) (*validateTime.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
