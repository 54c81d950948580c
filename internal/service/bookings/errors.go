package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTenantNotFound is returned when the tenant does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrAccessDenied is returned when the caller may not manage the tenant.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus is returned for unknown or non-reachable target states.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition is returned when the booking is not PENDING.
	ErrInvalidTransition = errors.New("booking status transition not allowed")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected internal failures.
	ErrInternal = errors.New("service: internal error")
)
