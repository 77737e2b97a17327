package validate_time

import "time"

// Code машиночитаемый результат проверки
type Code string

const (
	CodeValid           Code = "valid"
	CodeBranchNotFound  Code = "branch_not_found"
	CodeNoHours         Code = "no_operating_hours"
	CodeBranchClosed    Code = "branch_closed"
	CodeBeforeOpening   Code = "starts_before_opening"
	CodeAfterClosing    Code = "ends_after_closing"
	CodeCalendarClosure Code = "calendar_closure"
	CodeError           Code = "error"
)

// Request проверка записи [Start, Start+Duration) на соответствие часам работы филиала.
// Если StylistID задан и у мастера есть смена на этот день, проверяется по смене.
type Request struct {
	BranchID        string
	StylistID       *string
	Start           time.Time
	DurationMinutes int // <= 0 - domain.DefaultDurationMinutes
}

// Response результат проверки. Message показывается пользователю как есть.
type Response struct {
	IsValid bool
	Code    Code
	Message string
}
