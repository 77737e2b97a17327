package create_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.BranchID) == "" {
		return fmt.Errorf("%w: branchID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.StylistID != nil && strings.TrimSpace(*req.StylistID) == "" {
		return fmt.Errorf("%w: stylistID must not be blank", ErrInvalidInput)
	}

	for i, s := range req.Services {
		if strings.TrimSpace(s.ServiceID) == "" {
			return fmt.Errorf("%w: services[%d].serviceId is required", ErrInvalidInput, i)
		}
		if s.DurationMinutes < 0 {
			return fmt.Errorf("%w: services[%d].duration must not be negative", ErrInvalidInput, i)
		}
		if s.Price < 0 {
			return fmt.Errorf("%w: services[%d].price must not be negative", ErrInvalidInput, i)
		}
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}

	total := totalDuration(req)
	if total < domain.MinDurationMinutes || total > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// totalDuration сумма длительностей услуг, иначе явная длительность, иначе 60 минут
func totalDuration(req *Request) int {
	sum := 0
	for _, s := range req.Services {
		sum += s.DurationMinutes
	}
	if sum > 0 {
		return sum
	}
	if req.DurationMinutes > 0 {
		return req.DurationMinutes
	}
	return domain.DefaultDurationMinutes
}

// buildAssignment собирает назначение мастеров из запроса
func buildAssignment(req *Request) domain.Assignment {
	stylistID := ""
	if req.StylistID != nil {
		stylistID = *req.StylistID
	}

	if len(req.Services) == 0 {
		return domain.SingleAssignment{StylistID: stylistID}
	}

	lines := make([]domain.ServiceLine, len(req.Services))
	for i, s := range req.Services {
		lines[i] = domain.ServiceLine{
			ServiceID:       s.ServiceID,
			ServiceName:     s.ServiceName,
			StylistID:       s.StylistID,
			StylistName:     s.StylistName,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}
	return domain.MultiAssignment{StylistID: stylistID, Services: lines}
}
