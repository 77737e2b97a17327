package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/types"
)

// Request запрос слотов для одного мастера или "любого свободного"
type Request struct {
	BranchID               string
	StylistID              *string   // nil - любой мастер, без проверки конфликтов
	Date                   time.Time // календарный день, время не учитывается
	ServiceDurationMinutes int       // <= 0 - domain.DefaultDurationMinutes
}

// TeamRequest запрос слотов для записи из нескольких услуг с разными мастерами
type TeamRequest struct {
	BranchID               string
	StylistIDs             []string
	Date                   time.Time
	ServiceDurationMinutes int
}

// Response слоты на день. Если Message задан, Slots пуст и Message - окончательная причина.
type Response struct {
	BranchID string
	Date     time.Time
	Slots    []domain.TimeSlot
	Message  *string
}

// workingHours итоговое окно работы на день после смен и календаря
type workingHours struct {
	open   types.TimeString
	close  types.TimeString
	source string // branch | shift | special_hours, для логов
}
