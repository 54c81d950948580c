package models

import (
	"errors"
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus is returned for unknown status strings.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// UpdateStatusRequest is an admin request to move a PENDING booking.
type UpdateStatusRequest struct {
	BookingID      string
	Status         string
	CallerRole     domain.Role
	CallerTenantID string
}

// GetTenantBookingsRequest lists a tenant's bookings for the admin panel.
type GetTenantBookingsRequest struct {
	TenantID         string
	CallerRole       domain.Role
	CallerTenantID   string
	Date             *time.Time
	Status           *string
	IncludeCancelled bool
}

// ToDomainFilter converts the request into the repository filter.
func (r *GetTenantBookingsRequest) ToDomainFilter() (domain.TenantBookingsFilter, error) {
	filter := domain.TenantBookingsFilter{
		TenantID:         r.TenantID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// BookingResponse is the admin view of one booking.
type BookingResponse struct {
	ID              string  `json:"id"`
	TenantID        string  `json:"tenantId"`
	ServiceID       string  `json:"serviceId"`
	ServiceTitle    string  `json:"serviceTitle"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	BookingDate     string  `json:"bookingDate"` // "2026-03-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	ClientName      string  `json:"clientName"`
	ClientSurname   string  `json:"clientSurname"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     string  `json:"clientPhone"`
	Notes           *string `json:"notes,omitempty"`
	Status          string  `json:"status"`
	CalendarEventID *string `json:"calendarEventId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// BookingListResponse is a list of admin booking views.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking converts a domain booking into the admin view.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		TenantID:        b.TenantID,
		ServiceID:       b.Service.ID,
		ServiceTitle:    b.Service.Title,
		ServicePrice:    b.Service.Price,
		DurationMinutes: b.Service.DurationMinutes,
		BookingDate:     b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		ClientName:      b.ClientName,
		ClientSurname:   b.ClientSurname,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		Notes:           b.Notes,
		Status:          string(b.Status),
		CalendarEventID: b.CalendarEventID,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList converts a booking slice into the list view.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		out.Bookings = append(out.Bookings, *FromDomainBooking(b))
	}
	return out
}
