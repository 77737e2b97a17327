package stylist_availability

import (
	"context"

	checkStylist "github.com/m04kA/SMC-SalonAvailability/internal/usecase/check_stylist"
)

type CheckStylistUseCase interface {
	Execute(ctx context.Context, req *checkStylist.Request) (*checkStylist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
