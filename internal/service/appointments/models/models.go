package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelledBy"`
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Actor  string  `json:"actor"`
	Reason *string `json:"reason,omitempty"` // только для отмены
}

// Response модели

// ServiceLineResponse услуга внутри записи
type ServiceLineResponse struct {
	ServiceID       string  `json:"serviceId"`
	ServiceName     string  `json:"serviceName,omitempty"`
	StylistID       string  `json:"stylistId,omitempty"`
	StylistName     string  `json:"stylistName,omitempty"`
	DurationMinutes int     `json:"duration,omitempty"`
	Price           float64 `json:"price,omitempty"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              string                `json:"id"`
	BranchID        string                `json:"branchId"`
	ClientID        *string               `json:"clientId,omitempty"`
	ClientName      string                `json:"clientName"`
	ClientPhone     *string               `json:"clientPhone,omitempty"`
	AppointmentDate time.Time             `json:"appointmentDate"`
	DurationMinutes int                   `json:"duration"`
	Status          string                `json:"status"`
	StylistID       *string               `json:"stylistId,omitempty"`
	Services        []ServiceLineResponse `json:"services,omitempty"`
	Notes           *string               `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AutoCancelled автоматически отмененная запись
type AutoCancelled struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// AutoCancelResult результат прохода автоотмены
type AutoCancelResult struct {
	Checked   int             `json:"checked"`
	Cancelled []AutoCancelled `json:"cancelled"`
	Failed    int             `json:"failed"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		BranchID:           a.BranchID,
		ClientID:           a.ClientID,
		ClientName:         a.ClientName,
		ClientPhone:        a.ClientPhone,
		AppointmentDate:    a.AppointmentDate,
		DurationMinutes:    int(a.Duration() / time.Minute),
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledBy:        a.CancelledBy,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	switch v := a.Assignment.(type) {
	case domain.SingleAssignment:
		if v.StylistID != "" {
			resp.StylistID = &v.StylistID
		}
	case domain.MultiAssignment:
		if v.StylistID != "" {
			resp.StylistID = &v.StylistID
		}
		resp.Services = make([]ServiceLineResponse, len(v.Services))
		for i, s := range v.Services {
			resp.Services[i] = ServiceLineResponse{
				ServiceID:       s.ServiceID,
				ServiceName:     s.ServiceName,
				StylistID:       s.StylistID,
				StylistName:     s.StylistName,
				DurationMinutes: s.DurationMinutes,
				Price:           s.Price,
			}
		}
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
