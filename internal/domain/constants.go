package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone is used for tenants that never configured one.
// Availability resolution and calendar conversion happen in the tenant's
// business timezone; there is deliberately no per-request conversion.
const DefaultTimezone = "Europe/Rome"

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 500
)

// MinutesPerDay is the size of the minutes-of-day domain busy intervals live in.
const MinutesPerDay = 24 * 60

// ActiveStatuses are the statuses that occupy a slot.
// A cancelled booking frees its slot.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
