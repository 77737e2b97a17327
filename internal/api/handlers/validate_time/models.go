package validate_time

import (
	"strconv"
	"time"

	validateTime "github.com/m04kA/SMC-SalonAvailability/internal/usecase/validate_time"
)

// ValidateTimeResponse HTTP response model
type ValidateTimeResponse struct {
	IsValid bool   `json:"isValid"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// ToUseCaseRequest start в RFC3339, duration в минутах и stylistId (необязательные)
func ToUseCaseRequest(branchID, startStr, durationStr, stylistID string) (*validateTime.Request, error) {
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

	req := &validateTime.Request{
		BranchID:        branchID,
		Start:           start,
		DurationMinutes: duration,
	}
	if stylistID != "" {
		req.StylistID = &stylistID
	}
	return req, nil
}

func FromUseCaseResponse(resp *validateTime.Response) *ValidateTimeResponse {
	return &ValidateTimeResponse{
		IsValid: resp.IsValid,
		Code:    string(resp.Code),
		Message: resp.Message,
	}
}
