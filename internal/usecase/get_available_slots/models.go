package get_available_slots

import (
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/pkg/types"
)

// Request asks for the bookable slots of one service on one date.
type Request struct {
	Subdomain string    // tenant widget subdomain
	ServiceID string    // service within the tenant's set
	Date      time.Time // requested date, time part ignored
}

// Response carries the verdict for every candidate slot, in catalog order.
type Response struct {
	Date           time.Time
	ServiceID      string
	CalendarStatus domain.CalendarStatus // how trustworthy the calendar data was
	Slots          []Slot
}

// Slot is one candidate start time with its availability verdict.
type Slot struct {
	ID        string
	StartTime types.TimeString
	Available bool
}
