package availability

import "errors"

var (
	// ErrNoCalendars is returned when the tenant has no usable calendar
	// configuration. Distinct from a day with zero busy intervals.
	ErrNoCalendars = errors.New("availability: tenant has no calendars configured")

	// ErrInternal is returned on unexpected internal failures.
	ErrInternal = errors.New("availability: internal error")
)
