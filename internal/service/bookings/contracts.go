package bookings

import (
	"context"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/integrations/emailjs"
)

// BookingRepository reads bookings and applies guarded status updates.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error)
	UpdateStatusFromPending(ctx context.Context, id string, status domain.BookingStatus) error
}

// TenantRepository resolves tenants for notification credentials.
type TenantRepository interface {
	GetByID(ctx context.Context, tenantID string) (domain.Tenant, error)
}

// CalendarClient deletes the booking event when a booking is cancelled.
type CalendarClient interface {
	DeleteEvent(ctx context.Context, credentialsJSON, calendarID, eventID string) error
}

// MailClient delivers templated notification mail.
type MailClient interface {
	Send(ctx context.Context, creds emailjs.Credentials, templateParams map[string]string) error
}

// Logger is the leveled printf logger consumed by this package.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
