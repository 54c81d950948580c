package domain

import (
	"time"

	"github.com/open2agenda/booking-service/pkg/types"
)

// BookingStatus is the booking lifecycle state.
// Only PENDING is non-terminal.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus validates an external status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking is a committed appointment. The service is snapshotted at booking
// time so title/duration/price edits never retroactively change history.
type Booking struct {
	ID       string
	TenantID string
	Service  Service

	Date      time.Time
	StartTime types.TimeString

	ClientName    string
	ClientSurname string
	ClientEmail   string
	ClientPhone   string
	Notes         *string

	Status BookingStatus

	// CalendarEventID is set when the best-effort calendar write succeeded,
	// so cancellation can compensate by deleting the event.
	CalendarEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanTransitionTo reports whether an admin transition to next is allowed.
// Only PENDING -> CONFIRMED and PENDING -> CANCELLED are modeled.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status != StatusPending {
		return false
	}
	return next == StatusConfirmed || next == StatusCancelled
}

// EndTime returns the implied end, derived from the service duration.
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.Service.DurationMinutes)
}

// TenantBookingsFilter selects bookings of one tenant.
type TenantBookingsFilter struct {
	TenantID         string
	Date             *time.Time     // nil = all dates
	Status           *BookingStatus // nil = any status
	IncludeCancelled bool           // ignored when Status is set
}
