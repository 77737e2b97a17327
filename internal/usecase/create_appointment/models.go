package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

// Request модель запроса на создание записи.
// Либо StylistID (одна услуга или весь визит у одного мастера), либо Services со своими мастерами.
type Request struct {
	BranchID        string
	ClientID        *string
	ClientName      string
	ClientPhone     *string
	Start           time.Time
	StylistID       *string
	Services        []ServiceRequest
	DurationMinutes int // используется, если у услуг нет длительности; <= 0 - 60 минут
	Notes           *string
}

// ServiceRequest услуга в записи
type ServiceRequest struct {
	ServiceID       string
	ServiceName     string
	StylistID       string
	StylistName     string
	DurationMinutes int
	Price           float64
}

// Response созданная запись. Warning задан, если запись принята на проверку персоналом.
type Response struct {
	Appointment *domain.Appointment
	Warning     *string
}
