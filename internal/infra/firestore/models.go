package firestore

import (
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

type dayHoursDoc struct {
	Open   string `firestore:"open"`
	Close  string `firestore:"close"`
	IsOpen *bool  `firestore:"isOpen"`
	Closed bool   `firestore:"closed"`
}

type branchDoc struct {
	Name           string                 `firestore:"name"`
	Address        string                 `firestore:"address"`
	OperatingHours map[string]dayHoursDoc `firestore:"operatingHours"`
	CreatedAt      time.Time              `firestore:"createdAt"`
	UpdatedAt      time.Time              `firestore:"updatedAt"`
}

func (d branchDoc) toDomain(id string) *domain.Branch {
	hours := make(map[string]domain.DayHours, len(d.OperatingHours))
	for day, h := range d.OperatingHours {
		hours[day] = domain.DayHours{Open: h.Open, Close: h.Close, IsOpen: h.IsOpen, Closed: h.Closed}
	}
	return &domain.Branch{
		ID:             id,
		Name:           d.Name,
		Address:        d.Address,
		OperatingHours: hours,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type specialHoursDoc struct {
	Open  string `firestore:"open"`
	Close string `firestore:"close"`
}

type calendarDoc struct {
	BranchID     string           `firestore:"branchId"`
	Date         time.Time        `firestore:"date"`
	Type         string           `firestore:"type"`
	Title        string           `firestore:"title"`
	Status       string           `firestore:"status"`
	SpecialHours *specialHoursDoc `firestore:"specialHours"`
}

// toDomain переводит метку времени в календарный день салона
func (d calendarDoc) toDomain(id string, loc *time.Location) domain.CalendarEntry {
	y, m, day := d.Date.In(loc).Date()
	e := domain.CalendarEntry{
		ID:       id,
		BranchID: d.BranchID,
		Date:     time.Date(y, m, day, 0, 0, 0, 0, loc),
		Type:     domain.CalendarEntryType(d.Type),
		Title:    d.Title,
		Status:   d.Status,
	}
	if d.SpecialHours != nil {
		e.SpecialHours = &domain.SpecialHours{Open: d.SpecialHours.Open, Close: d.SpecialHours.Close}
	}
	return e
}

type shiftDoc struct {
	Start string `firestore:"start"`
	End   string `firestore:"end"`
}

type scheduleDoc struct {
	BranchID  string                         `firestore:"branchId"`
	Name      string                         `firestore:"name"`
	StartDate time.Time                      `firestore:"startDate"`
	IsActive  bool                           `firestore:"isActive"`
	Shifts    map[string]map[string]shiftDoc `firestore:"shifts"`
	CreatedAt time.Time                      `firestore:"createdAt"`
	UpdatedAt time.Time                      `firestore:"updatedAt"`
}

func (d scheduleDoc) toDomain(id string, loc *time.Location) domain.ScheduleConfiguration {
	shifts := make(map[string]map[string]domain.Shift, len(d.Shifts))
	for stylistID, days := range d.Shifts {
		shifts[stylistID] = make(map[string]domain.Shift, len(days))
		for day, s := range days {
			shifts[stylistID][day] = domain.Shift{Start: s.Start, End: s.End}
		}
	}
	return domain.ScheduleConfiguration{
		ID:        id,
		BranchID:  d.BranchID,
		Name:      d.Name,
		StartDate: d.StartDate.In(loc),
		IsActive:  d.IsActive,
		Shifts:    shifts,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type serviceLineDoc struct {
	ServiceID   string  `firestore:"serviceId"`
	ServiceName string  `firestore:"serviceName"`
	StylistID   string  `firestore:"stylistId"`
	StylistName string  `firestore:"stylistName"`
	Duration    int     `firestore:"duration"`
	Price       float64 `firestore:"price"`
}

type appointmentDoc struct {
	BranchID           string           `firestore:"branchId"`
	ClientID           *string          `firestore:"clientId"`
	ClientName         string           `firestore:"clientName"`
	ClientPhone        *string          `firestore:"clientPhone"`
	AppointmentDate    time.Time        `firestore:"appointmentDate"`
	Duration           int              `firestore:"duration"`
	Status             string           `firestore:"status"`
	StylistID          string           `firestore:"stylistId,omitempty"`
	Services           []serviceLineDoc `firestore:"services,omitempty"`
	Notes              *string          `firestore:"notes"`
	CancellationReason *string          `firestore:"cancellationReason"`
	CancelledBy        *string          `firestore:"cancelledBy"`
	CancelledAt        *time.Time       `firestore:"cancelledAt"`
	CreatedAt          time.Time        `firestore:"createdAt"`
	UpdatedAt          time.Time        `firestore:"updatedAt"`
}

func appointmentToDoc(a *domain.Appointment) appointmentDoc {
	d := appointmentDoc{
		BranchID:           a.BranchID,
		ClientID:           a.ClientID,
		ClientName:         a.ClientName,
		ClientPhone:        a.ClientPhone,
		AppointmentDate:    a.AppointmentDate,
		Duration:           a.DurationMinutes,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledBy:        a.CancelledBy,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	switch v := a.Assignment.(type) {
	case domain.SingleAssignment:
		d.StylistID = v.StylistID
	case domain.MultiAssignment:
		d.StylistID = v.StylistID
		d.Services = make([]serviceLineDoc, len(v.Services))
		for i, s := range v.Services {
			d.Services[i] = serviceLineDoc{
				ServiceID:   s.ServiceID,
				ServiceName: s.ServiceName,
				StylistID:   s.StylistID,
				StylistName: s.StylistName,
				Duration:    s.DurationMinutes,
				Price:       s.Price,
			}
		}
	}
	return d
}

func (d appointmentDoc) toDomain(id string) *domain.Appointment {
	a := &domain.Appointment{
		ID:                 id,
		BranchID:           d.BranchID,
		ClientID:           d.ClientID,
		ClientName:         d.ClientName,
		ClientPhone:        d.ClientPhone,
		AppointmentDate:    d.AppointmentDate,
		DurationMinutes:    d.Duration,
		Status:             domain.AppointmentStatus(d.Status),
		Notes:              d.Notes,
		CancellationReason: d.CancellationReason,
		CancelledBy:        d.CancelledBy,
		CancelledAt:        d.CancelledAt,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}

	if len(d.Services) > 0 {
		lines := make([]domain.ServiceLine, len(d.Services))
		for i, s := range d.Services {
			lines[i] = domain.ServiceLine{
				ServiceID:       s.ServiceID,
				ServiceName:     s.ServiceName,
				StylistID:       s.StylistID,
				StylistName:     s.StylistName,
				DurationMinutes: s.Duration,
				Price:           s.Price,
			}
		}
		a.Assignment = domain.MultiAssignment{StylistID: d.StylistID, Services: lines}
	} else {
		a.Assignment = domain.SingleAssignment{StylistID: d.StylistID}
	}
	return a
}
