package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonAvailability/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BranchID       string          `json:"branchId"`
	Date           string          `json:"date"`
	Slots          []AvailableSlot `json:"slots"`
	AvailableCount int             `json:"availableCount"`
	Message        *string         `json:"message,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"`     // HH:MM в часовом поясе салона
	StartsAt  string `json:"startsAt"` // RFC3339
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Time.Format(domain.TimeFormat),
			StartsAt:  slot.Time.Format(time.RFC3339),
			Available: slot.Available,
			Reason:    slot.Reason,
		}
	}

	return &AvailableSlotsResponse{
		BranchID:       resp.BranchID,
		Date:           resp.Date.Format(domain.DateFormat),
		Slots:          slots,
		AvailableCount: domain.CountAvailable(resp.Slots),
		Message:        resp.Message,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// durationStr может быть пустым - тогда используется длительность по умолчанию.
func ToUseCaseRequest(branchID, dateStr, durationStr string, stylistIDs []string) (*getAvailableSlots.TeamRequest, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
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

	return &getAvailableSlots.TeamRequest{
		BranchID:               branchID,
		StylistIDs:             stylistIDs,
		Date:                   date,
		ServiceDurationMinutes: duration,
	}, nil
}
