package create_booking

import (
	"context"
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/integrations/emailjs"
	"github.com/open2agenda/booking-service/internal/integrations/googlecalendar"
)

// TenantRepository resolves the tenant the widget is embedded for.
type TenantRepository interface {
	GetBySubdomain(ctx context.Context, subdomain string) (domain.Tenant, error)
}

// BookingRepository persists bookings and re-reads the day under lock.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error)
	SetCalendarEventID(ctx context.Context, id string, eventID string) error
}

// SlotResolver re-validates the requested slot with fresh calendar data.
type SlotResolver interface {
	SlotAvailable(ctx context.Context, tenant *domain.Tenant, service *domain.Service, date time.Time, slot domain.TimeSlot) (bool, domain.CalendarStatus, error)
}

// CalendarClient writes the booking event to the tenant calendar.
type CalendarClient interface {
	InsertEvent(ctx context.Context, credentialsJSON, calendarID string, event googlecalendar.NewEvent) (string, error)
}

// MailClient delivers templated notification mail.
type MailClient interface {
	Send(ctx context.Context, creds emailjs.Credentials, templateParams map[string]string) error
}

// AssistantClient generates the human-friendly confirmation text.
type AssistantClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TransactionManager runs the persistence step atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time, swappable in tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the leveled printf logger consumed by this package.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
