package domain

import "time"

// Причины недоступности слота
const (
	SlotReasonAdvanceWindow = "within 2-hour window"
	SlotReasonStylistBusy   = "stylist has a conflicting appointment"
	SlotReasonTeamBusy      = "not all stylists are available"
)

// TimeSlot candidate appointment start
type TimeSlot struct {
	Time      time.Time
	Available bool
	Reason    string // пусто для доступного слота
}

// CountAvailable returns the number of bookable slots
func CountAvailable(slots []TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
