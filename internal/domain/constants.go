package domain

import "time"

// Default values
const (
	DefaultDurationMinutes = 60 // длительность записи, если не указана
	SlotStepMinutes        = 30 // шаг сетки слотов
	AdvanceBookingWindow   = 2 * time.Hour
)

// Auto-cancel policy for stale pending appointments.
// PastDueLookup отбирает записи не позже "вчера", отменяются те, что ушли в прошлое больше чем на PastDueAfter.
const (
	AutoCancelPastDueAfter  = 2 * time.Hour
	AutoCancelPastDueLookup = 24 * time.Hour
	AutoCancelExpiredAfter  = 7 * 24 * time.Hour
	AutoCancelQueryLimit    = 10
	AutoCancelMaxPerRun     = 5
	AutoCancelReasonPastDue = "Auto-cancelled: Appointment time has passed"
	AutoCancelReasonExpired = "Auto-cancelled: Pending booking expired"
	SystemActor             = "system"
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 720 // 12 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы записей, которые занимают время мастера
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInService,
}

// TerminalStatuses финальные статусы, из которых нет переходов
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
