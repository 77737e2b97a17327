package update_appointment_status

import (
	"github.com/m04kA/SMC-SalonAvailability/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actor string) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Status: r.Status,
		Actor:  actor,
		Reason: r.Reason,
	}
}
