package create_booking

import (
	"time"

	"github.com/open2agenda/booking-service/pkg/types"
)

// Request carries one booking submission from the widget.
type Request struct {
	Subdomain string
	ServiceID string
	Date      time.Time
	StartTime types.TimeString

	ClientName    string
	ClientSurname string
	ClientEmail   string
	ClientPhone   string
	Notes         *string
}

// Response is the committed booking plus customer-facing confirmation text.
// Warnings describe best-effort side effects that failed; they are meant for
// the admin surface, never shown raw to the customer.
type Response struct {
	ID              string
	ServiceID       string
	ServiceTitle    string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	Message         string
	Warnings        []string
	CreatedAt       time.Time
}
