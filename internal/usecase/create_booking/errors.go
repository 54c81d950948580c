package create_booking

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant serves the subdomain.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrServiceNotFound is returned when the service is not in the tenant's set.
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidSlot is returned when the start time is not in the catalog.
	ErrInvalidSlot = errors.New("start time is not a bookable slot")

	// ErrInvalidDate is returned for dates in the past.
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotNoLongerAvailable is returned when re-validation finds the slot
	// blocked, or the insert loses the uniqueness race.
	ErrSlotNoLongerAvailable = errors.New("slot is no longer available")

	// ErrInternal is returned on unexpected internal failures.
	ErrInternal = errors.New("usecase: internal error")
)
