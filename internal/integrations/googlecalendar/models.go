package googlecalendar

import "time"

// Event is the normalized view of one calendar event.
// AllDay events carry the date only; Start/End are midnight-to-midnight in the
// location the fetch was made for.
type Event struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool
}

// NewEvent is the payload for inserting a booking event.
type NewEvent struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
	Attendees   []string
}
