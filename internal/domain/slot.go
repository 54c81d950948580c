package domain

import "github.com/open2agenda/booking-service/pkg/types"

// TimeSlot is one entry of the fixed, tenant-independent catalog of candidate
// appointment start times.
type TimeSlot struct {
	ID        string           `json:"id"`
	StartTime types.TimeString `json:"startTime"`
}

// candidateSlots is the shared time-of-day catalog: hourly starts through the
// morning and afternoon with a midday gap.
var candidateSlots = []TimeSlot{
	{ID: "t1", StartTime: "09:00"},
	{ID: "t2", StartTime: "10:00"},
	{ID: "t3", StartTime: "11:00"},
	{ID: "t4", StartTime: "12:00"},
	{ID: "t5", StartTime: "14:00"},
	{ID: "t6", StartTime: "15:00"},
	{ID: "t7", StartTime: "16:00"},
	{ID: "t8", StartTime: "17:00"},
}

// CandidateSlots returns a copy of the catalog in chronological order.
func CandidateSlots() []TimeSlot {
	out := make([]TimeSlot, len(candidateSlots))
	copy(out, candidateSlots)
	return out
}

// CandidateSlotByStart looks a catalog entry up by its start time.
func CandidateSlotByStart(start types.TimeString) (TimeSlot, bool) {
	for _, slot := range candidateSlots {
		if slot.StartTime == start {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// BusyInterval is one externally-booked block on a given date, in local
// minutes-of-day. Derived from calendar events, never persisted.
type BusyInterval struct {
	StartMinutes    int
	DurationMinutes int
}

// EndMinutes returns the exclusive end of the interval.
func (b BusyInterval) EndMinutes() int {
	return b.StartMinutes + b.DurationMinutes
}

// Overlaps reports whether [startMinutes, endMinutes) intersects the interval.
// Strict half-open test: touching boundaries do not conflict.
func (b BusyInterval) Overlaps(startMinutes, endMinutes int) bool {
	return startMinutes < b.EndMinutes() && endMinutes > b.StartMinutes
}

// CalendarStatus qualifies how trustworthy a day's busy data is.
type CalendarStatus string

const (
	// CalendarOK: every configured calendar answered.
	CalendarOK CalendarStatus = "ok"
	// CalendarDegraded: at least one calendar failed; its blocks are missing.
	CalendarDegraded CalendarStatus = "degraded"
	// CalendarOffline: no usable calendar configuration at all. Distinct from
	// "zero intervals found" so callers can choose a degraded policy.
	CalendarOffline CalendarStatus = "offline"
)

// DayBusy is the aggregated busy time of one date across a tenant's calendars.
type DayBusy struct {
	Intervals        []BusyInterval
	CalendarsQueried int
	CalendarsFailed  int
}

// Status derives the trust level from the per-calendar outcomes.
func (d *DayBusy) Status() CalendarStatus {
	switch {
	case d.CalendarsQueried == 0:
		return CalendarOffline
	case d.CalendarsFailed > 0:
		return CalendarDegraded
	default:
		return CalendarOK
	}
}

// AnyOverlap reports whether [startMinutes, endMinutes) hits any busy interval.
func (d *DayBusy) AnyOverlap(startMinutes, endMinutes int) bool {
	for _, interval := range d.Intervals {
		if interval.Overlaps(startMinutes, endMinutes) {
			return true
		}
	}
	return false
}
