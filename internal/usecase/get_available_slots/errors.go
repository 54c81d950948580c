package get_available_slots

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant serves the subdomain.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrServiceNotFound is returned when the service is not in the tenant's set.
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidDate is returned for dates in the past.
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected internal failures.
	ErrInternal = errors.New("usecase: internal error")
)
