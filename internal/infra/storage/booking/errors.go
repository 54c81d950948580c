package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the id.
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken is returned when the slot-uniqueness constraint rejects an
	// insert: another non-cancelled booking already occupies the slot.
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrNotPending is returned when a guarded status update finds the booking
	// no longer in PENDING.
	ErrNotPending = errors.New("booking.repository: booking is not pending")

	// ErrBuildQuery is returned when the SQL builder fails.
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when query execution fails.
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when result scanning fails.
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
