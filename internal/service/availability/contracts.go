package availability

import (
	"context"
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/integrations/googlecalendar"
)

// CalendarClient reads day events from one tenant calendar.
type CalendarClient interface {
	ListDayEvents(ctx context.Context, credentialsJSON, calendarID string, dayStart, dayEnd time.Time) ([]googlecalendar.Event, error)
}

// BusyFetcher aggregates a tenant's busy time for one date.
type BusyFetcher interface {
	FetchDayBusy(ctx context.Context, tenant *domain.Tenant, date time.Time) (*domain.DayBusy, error)
}

// Logger is the leveled printf logger consumed by this package.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
