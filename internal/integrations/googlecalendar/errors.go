package googlecalendar

import "errors"

var (
	// ErrInvalidCredentials is returned when the tenant's service-account JSON
	// cannot be parsed into usable credentials.
	ErrInvalidCredentials = errors.New("googlecalendar client: invalid service account credentials")

	// ErrRequestFailed is returned when the Calendar API call itself fails
	// (transport, authorization, quota).
	ErrRequestFailed = errors.New("googlecalendar client: request failed")

	// ErrInvalidEvent is returned when an event payload is malformed.
	ErrInvalidEvent = errors.New("googlecalendar client: invalid event")
)
