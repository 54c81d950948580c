package availability

import (
	"context"
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/integrations/googlecalendar"
)

// Aggregator collects a tenant's busy time for one date across its
// configured calendars.
type Aggregator struct {
	calendar CalendarClient
	logger   Logger
}

// NewAggregator creates a busy-interval aggregator.
func NewAggregator(calendar CalendarClient, logger Logger) *Aggregator {
	return &Aggregator{
		calendar: calendar,
		logger:   logger,
	}
}

// FetchDayBusy queries every calendar of the tenant over the whole business
// day and merges the results into local minutes-of-day intervals.
//
// A single failing calendar contributes no intervals and is counted in
// CalendarsFailed; the aggregation never aborts on it. Only a tenant with no
// calendar configuration at all yields ErrNoCalendars.
func (a *Aggregator) FetchDayBusy(ctx context.Context, tenant *domain.Tenant, date time.Time) (*domain.DayBusy, error) {
	calendarIDs := tenant.CalendarIDs()
	if len(calendarIDs) == 0 {
		return nil, ErrNoCalendars
	}

	loc := tenant.Location()
	// The bound is next midnight in loc, not dayStart+24h: a wall-clock day
	// is 23 or 25 hours when it crosses a DST change.
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := time.Date(date.Year(), date.Month(), date.Day()+1, 0, 0, 0, 0, loc).Add(-time.Second)

	busy := &domain.DayBusy{}
	for _, calendarID := range calendarIDs {
		busy.CalendarsQueried++

		events, err := a.calendar.ListDayEvents(ctx, *tenant.ServiceAccountJSON, calendarID, dayStart, dayEnd)
		if err != nil {
			a.logger.Warn("FetchDayBusy: tenant=%s calendar=%s failed, continuing without it: %v", tenant.ID, calendarID, err)
			busy.CalendarsFailed++
			continue
		}

		for _, event := range events {
			if interval, ok := eventToInterval(event, dayStart); ok {
				busy.Intervals = append(busy.Intervals, interval)
			}
		}
	}

	a.logger.Info("FetchDayBusy: tenant=%s date=%s intervals=%d queried=%d failed=%d",
		tenant.ID, dayStart.Format(domain.DateFormat), len(busy.Intervals), busy.CalendarsQueried, busy.CalendarsFailed)

	return busy, nil
}

// eventToInterval converts a calendar event into a busy block clamped to the
// business day. All-day events block the whole day.
func eventToInterval(event googlecalendar.Event, dayStart time.Time) (domain.BusyInterval, bool) {
	if event.AllDay {
		return domain.BusyInterval{StartMinutes: 0, DurationMinutes: domain.MinutesPerDay}, true
	}

	startMinutes := int(event.Start.Sub(dayStart).Minutes())
	endMinutes := int(event.End.Sub(dayStart).Minutes())

	if startMinutes < 0 {
		startMinutes = 0
	}
	if endMinutes > domain.MinutesPerDay {
		endMinutes = domain.MinutesPerDay
	}
	if endMinutes <= startMinutes {
		return domain.BusyInterval{}, false
	}

	return domain.BusyInterval{
		StartMinutes:    startMinutes,
		DurationMinutes: endMinutes - startMinutes,
	}, true
}
