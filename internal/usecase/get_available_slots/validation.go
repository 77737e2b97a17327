package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.StylistID != nil && strings.TrimSpace(*req.StylistID) == "" {
		return fmt.Errorf("%w: stylistID must not be blank", ErrInvalidInput)
	}
	return validateCommon(req.BranchID, req.Date, req.ServiceDurationMinutes)
}

func validateTeamRequest(req *TeamRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	return validateCommon(req.BranchID, req.Date, req.ServiceDurationMinutes)
}

func validateCommon(branchID string, date time.Time, duration int) error {
	if strings.TrimSpace(branchID) == "" {
		return fmt.Errorf("%w: branchID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if duration > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}
	return nil
}
