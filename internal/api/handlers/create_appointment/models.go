package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SalonAvailability/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonAvailability/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BranchID    string           `json:"branchId"`
	ClientID    *string          `json:"clientId,omitempty"`
	ClientName  string           `json:"clientName"`
	ClientPhone *string          `json:"clientPhone,omitempty"`
	Date        string           `json:"date"`      // "2025-03-10"
	StartTime   string           `json:"startTime"` // "10:00", часовой пояс салона
	StylistID   *string          `json:"stylistId,omitempty"`
	Services    []ServiceRequest `json:"services,omitempty"`
	Duration    int              `json:"duration,omitempty"` // минуты, если у услуг нет длительности
	Notes       *string          `json:"notes,omitempty"`
}

// ServiceRequest услуга в записи
type ServiceRequest struct {
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName,omitempty"`
	StylistID   string  `json:"stylistId,omitempty"`
	StylistName string  `json:"stylistName,omitempty"`
	Duration    int     `json:"duration,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

// AppointmentCreatedResponse HTTP response model
type AppointmentCreatedResponse struct {
	*models.AppointmentResponse
	Warning *string `json:"warning,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата и время начала интерпретируются в часовом поясе салона loc.
func (r *CreateAppointmentRequest) ToUseCaseRequest(loc *time.Location) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	services := make([]createAppointment.ServiceRequest, len(r.Services))
	for i, s := range r.Services {
		services[i] = createAppointment.ServiceRequest{
			ServiceID:       s.ServiceID,
			ServiceName:     s.ServiceName,
			StylistID:       s.StylistID,
			StylistName:     s.StylistName,
			DurationMinutes: s.Duration,
			Price:           s.Price,
		}
	}

	return &createAppointment.Request{
		BranchID:        r.BranchID,
		ClientID:        r.ClientID,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		Start:           startTime.OnDate(date, loc),
		StylistID:       r.StylistID,
		Services:        services,
		DurationMinutes: r.Duration,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentCreatedResponse {
	return &AppointmentCreatedResponse{
		AppointmentResponse: models.FromDomainAppointment(resp.Appointment),
		Warning:             resp.Warning,
	}
}
