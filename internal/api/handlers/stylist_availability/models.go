package stylist_availability

import (
	"strconv"
	"time"

	checkStylist "github.com/m04kA/SMC-SalonAvailability/internal/usecase/check_stylist"
)

// StylistAvailabilityResponse HTTP response model
type StylistAvailabilityResponse struct {
	StylistID                string  `json:"stylistId"`
	Free                     bool    `json:"free"`
	ConflictingAppointmentID *string `json:"conflictingAppointmentId,omitempty"`
}

// ToUseCaseRequest start в RFC3339, duration в минутах, excludeAppointmentID может быть пустым
func ToUseCaseRequest(stylistID, startStr, durationStr, excludeAppointmentID string) (*checkStylist.Request, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}

	duration := 0
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
	}

	req := &checkStylist.Request{
		StylistID:       &stylistID,
		Start:           start,
		DurationMinutes: duration,
	}
	if excludeAppointmentID != "" {
		req.ExcludeAppointmentID = &excludeAppointmentID
	}
	return req, nil
}
