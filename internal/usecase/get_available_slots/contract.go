package get_available_slots

import (
	"context"
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/service/availability"
)

// TenantRepository resolves the tenant the widget is embedded for.
type TenantRepository interface {
	GetBySubdomain(ctx context.Context, subdomain string) (domain.Tenant, error)
}

// BookingRepository reads stored bookings for the overlay step.
type BookingRepository interface {
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error)
}

// SlotResolver resolves the candidate catalog against rule and calendars.
type SlotResolver interface {
	ResolveSlots(ctx context.Context, tenant *domain.Tenant, service *domain.Service, date time.Time, candidates []domain.TimeSlot) (*availability.DayResolution, error)
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
