package get_available_slots

import "errors"

// ErrInvalidInput возвращается при некорректных входных данных.
// Остальные проблемы (нет филиала, закрыто, ошибка чтения) возвращаются сообщением в Response.
var ErrInvalidInput = errors.New("invalid input data")

// Сообщения, которые клиент показывает пользователю как есть
const (
	MsgBranchNotFound   = "Branch not found"
	MsgNoOperatingHours = "No operating hours configured for this branch"
	MsgLoadFailed       = "Error loading time slots. Please try again."

	msgBranchClosedFormat = "Branch is closed on %ss"
	msgCalendarFormat     = "%s - No appointments available"
	msgDoesNotFitFormat   = "No available time slots. Selected services require %s hours to complete. " +
		"Please select an earlier date or contact us to adjust the appointment duration."
)
