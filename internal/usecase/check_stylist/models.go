package check_stylist

import "time"

// Request проверка занятости мастера на интервал [Start, Start+Duration)
type Request struct {
	StylistID            *string // nil или пусто - мастер не назначен, всегда свободен
	Start                time.Time
	DurationMinutes      int     // <= 0 - domain.DefaultDurationMinutes
	ExcludeAppointmentID *string // запись, которую переносят, не конфликтует сама с собой
}

// Response результат проверки
type Response struct {
	Free                     bool
	ConflictingAppointmentID *string
}
