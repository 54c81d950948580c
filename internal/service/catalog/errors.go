package catalog

import "errors"

var (
	// ErrTenantNotFound is returned when the tenant does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrAccessDenied is returned when the caller may not manage the tenant.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidService is returned when a submitted service fails validation.
	ErrInvalidService = errors.New("invalid service definition")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected internal failures.
	ErrInternal = errors.New("service: internal error")
)
