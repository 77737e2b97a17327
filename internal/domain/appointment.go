package domain

import (
	"slices"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusInService AppointmentStatus = "in_service"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	return slices.Contains(OccupyingStatuses, s) || slices.Contains(TerminalStatuses, s)
}

// IsTerminal returns true if no further transitions are allowed
func (s AppointmentStatus) IsTerminal() bool {
	return slices.Contains(TerminalStatuses, s)
}

// allowedTransitions pending -> confirmed -> in_service -> completed; отмена и no_show до начала обслуживания
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusInService, StatusCancelled, StatusNoShow},
	StatusInService: {StatusCompleted},
}

// CanTransitionTo returns true if the status may change to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	return slices.Contains(allowedTransitions[s], next)
}

// Assignment назначение мастеров на запись.
// Запись либо целиком у одного мастера (SingleAssignment), либо каждая услуга у своего (MultiAssignment).
type Assignment interface {
	// Involves сообщает, задействован ли мастер в записи
	Involves(stylistID string) bool
	// StylistIDs возвращает назначенных мастеров без повторов и пустых значений
	StylistIDs() []string
}

// SingleAssignment запись у одного мастера. Пустой StylistID - мастер не назначен
type SingleAssignment struct {
	StylistID string
}

func (a SingleAssignment) Involves(stylistID string) bool {
	return stylistID != "" && a.StylistID == stylistID
}

func (a SingleAssignment) StylistIDs() []string {
	if a.StylistID == "" {
		return nil
	}
	return []string{a.StylistID}
}

// ServiceLine услуга внутри записи
type ServiceLine struct {
	ServiceID       string
	ServiceName     string
	StylistID       string
	StylistName     string
	DurationMinutes int
	Price           float64
}

// MultiAssignment запись из нескольких услуг, у каждой свой мастер.
// StylistID заполнен у старых записей, где мастер указан и на уровне записи.
type MultiAssignment struct {
	StylistID string
	Services  []ServiceLine
}

func (a MultiAssignment) Involves(stylistID string) bool {
	if stylistID == "" {
		return false
	}
	if a.StylistID == stylistID {
		return true
	}
	for _, s := range a.Services {
		if s.StylistID == stylistID {
			return true
		}
	}
	return false
}

func (a MultiAssignment) StylistIDs() []string {
	ids := make([]string, 0, len(a.Services)+1)
	if a.StylistID != "" {
		ids = append(ids, a.StylistID)
	}
	for _, s := range a.Services {
		if s.StylistID != "" && !slices.Contains(ids, s.StylistID) {
			ids = append(ids, s.StylistID)
		}
	}
	return ids
}

// Appointment represents a salon appointment
type Appointment struct {
	ID              string
	BranchID        string
	ClientID        *string
	ClientName      string
	ClientPhone     *string
	AppointmentDate time.Time
	DurationMinutes int // 0 = DefaultDurationMinutes
	Status          AppointmentStatus
	Assignment      Assignment
	Notes           *string

	CancellationReason *string
	CancelledBy        *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the appointment length, falling back to the default
func (a *Appointment) Duration() time.Duration {
	if a.DurationMinutes <= 0 {
		return DefaultDurationMinutes * time.Minute
	}
	return time.Duration(a.DurationMinutes) * time.Minute
}

// Interval returns the half-open range [start, end) the appointment occupies
func (a *Appointment) Interval() (time.Time, time.Time) {
	return a.AppointmentDate, a.AppointmentDate.Add(a.Duration())
}

// Involves reports whether the stylist is assigned to the appointment
func (a *Appointment) Involves(stylistID string) bool {
	if a.Assignment == nil {
		return false
	}
	return a.Assignment.Involves(stylistID)
}

// IsOccupying returns true if the appointment still holds its time
func (a *Appointment) IsOccupying() bool {
	return slices.Contains(OccupyingStatuses, a.Status)
}

// Overlaps checks half-open overlap of [start, end) with the appointment
func (a *Appointment) Overlaps(start, end time.Time) bool {
	aptStart, aptEnd := a.Interval()
	return start.Before(aptEnd) && end.After(aptStart)
}

// BlocksStylist returns true if the appointment makes the stylist busy during [start, end)
func (a *Appointment) BlocksStylist(stylistID string, start, end time.Time) bool {
	return a.IsOccupying() && a.Involves(stylistID) && a.Overlaps(start, end)
}

// AppointmentFilter фильтр выборки записей
type AppointmentFilter struct {
	BranchID      *string             // nil - все филиалы
	From          *time.Time          // appointmentDate >= From
	To            *time.Time          // appointmentDate < To
	Statuses      []AppointmentStatus // пусто - любые статусы
	CreatedBefore *time.Time          // createdAt <= CreatedBefore
	Limit         int                 // 0 - без ограничения
}

// DayFilter фильтр занимающих время записей за календарный день day
func DayFilter(branchID *string, day time.Time) AppointmentFilter {
	start, end := DayBounds(day)
	return AppointmentFilter{
		BranchID: branchID,
		From:     &start,
		To:       &end,
		Statuses: OccupyingStatuses,
	}
}

// DayBounds возвращает [начало дня, начало следующего дня) в локации day
func DayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// SameDay сравнивает календарные дни, каждый в своей локации
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
