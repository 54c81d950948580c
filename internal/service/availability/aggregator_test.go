package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/integrations/googlecalendar"
	"github.com/open2agenda/booking-service/pkg/ptr"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

// fakeCalendar returns canned events per calendar id.
type fakeCalendar struct {
	events map[string][]googlecalendar.Event
	errs   map[string]error
	calls  []string

	windowStart time.Time
	windowEnd   time.Time
}

func (f *fakeCalendar) ListDayEvents(_ context.Context, _, calendarID string, start, end time.Time) ([]googlecalendar.Event, error) {
	f.calls = append(f.calls, calendarID)
	f.windowStart = start
	f.windowEnd = end
	if err := f.errs[calendarID]; err != nil {
		return nil, err
	}
	return f.events[calendarID], nil
}

func calendarTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:                 "t-1",
		Timezone:           "Europe/Rome",
		ServiceAccountJSON: ptr.Ptr(`{"type":"service_account"}`),
		BridgeCalendarID:   ptr.Ptr("bridge@cal"),
		TargetCalendarID:   ptr.Ptr("owner@cal"),
	}
}

func romeTime(t *testing.T, day string, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	date, err := time.ParseInLocation(domain.DateFormat, day, loc)
	require.NoError(t, err)
	return date.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestAggregator_NoCalendarsConfigured(t *testing.T) {
	cal := &fakeCalendar{}
	agg := NewAggregator(cal, testLogger{})

	tenant := &domain.Tenant{ID: "t-1"}
	_, err := agg.FetchDayBusy(context.Background(), tenant, time.Now())

	assert.ErrorIs(t, err, ErrNoCalendars)
	assert.Empty(t, cal.calls)
}

func TestAggregator_MergesBothCalendars(t *testing.T) {
	day := "2026-03-13"
	cal := &fakeCalendar{
		events: map[string][]googlecalendar.Event{
			"bridge@cal": {{ID: "e1", Start: romeTime(t, day, 10, 0), End: romeTime(t, day, 11, 0)}},
			"owner@cal":  {{ID: "e2", Start: romeTime(t, day, 15, 30), End: romeTime(t, day, 16, 0)}},
		},
	}
	agg := NewAggregator(cal, testLogger{})

	busy, err := agg.FetchDayBusy(context.Background(), calendarTenant(), romeTime(t, day, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, []string{"bridge@cal", "owner@cal"}, cal.calls)
	assert.Equal(t, 2, busy.CalendarsQueried)
	assert.Equal(t, 0, busy.CalendarsFailed)
	assert.Equal(t, domain.CalendarOK, busy.Status())
	require.Len(t, busy.Intervals, 2)
	assert.Equal(t, domain.BusyInterval{StartMinutes: 600, DurationMinutes: 60}, busy.Intervals[0])
	assert.Equal(t, domain.BusyInterval{StartMinutes: 930, DurationMinutes: 30}, busy.Intervals[1])
}

func TestAggregator_OneCalendarFailingIsTolerated(t *testing.T) {
	day := "2026-03-13"
	cal := &fakeCalendar{
		events: map[string][]googlecalendar.Event{
			"owner@cal": {{ID: "e1", Start: romeTime(t, day, 9, 0), End: romeTime(t, day, 10, 0)}},
		},
		errs: map[string]error{
			"bridge@cal": errors.New("quota exceeded"),
		},
	}
	agg := NewAggregator(cal, testLogger{})

	busy, err := agg.FetchDayBusy(context.Background(), calendarTenant(), romeTime(t, day, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, 2, busy.CalendarsQueried)
	assert.Equal(t, 1, busy.CalendarsFailed)
	assert.Equal(t, domain.CalendarDegraded, busy.Status())
	require.Len(t, busy.Intervals, 1)
	assert.Equal(t, 540, busy.Intervals[0].StartMinutes)
}

func TestAggregator_AllDayEventBlocksWholeDay(t *testing.T) {
	day := "2026-03-13"
	cal := &fakeCalendar{
		events: map[string][]googlecalendar.Event{
			"bridge@cal": {{ID: "e1", AllDay: true}},
		},
	}
	tenant := calendarTenant()
	tenant.TargetCalendarID = nil
	agg := NewAggregator(cal, testLogger{})

	busy, err := agg.FetchDayBusy(context.Background(), tenant, romeTime(t, day, 0, 0))
	require.NoError(t, err)

	require.Len(t, busy.Intervals, 1)
	assert.Equal(t, domain.BusyInterval{StartMinutes: 0, DurationMinutes: domain.MinutesPerDay}, busy.Intervals[0])
	assert.True(t, busy.AnyOverlap(540, 600))
	assert.True(t, busy.AnyOverlap(1020, 1080))
}

func TestAggregator_ClampsEventsToDay(t *testing.T) {
	day := "2026-03-13"
	cal := &fakeCalendar{
		events: map[string][]googlecalendar.Event{
			"bridge@cal": {
				// Starts the evening before, ends 01:00 local.
				{ID: "e1", Start: romeTime(t, "2026-03-12", 22, 0), End: romeTime(t, day, 1, 0)},
				// Ends the morning after.
				{ID: "e2", Start: romeTime(t, day, 23, 0), End: romeTime(t, "2026-03-14", 2, 0)},
				// Entirely on another day: dropped after clamping.
				{ID: "e3", Start: romeTime(t, "2026-03-14", 10, 0), End: romeTime(t, "2026-03-14", 11, 0)},
			},
		},
	}
	tenant := calendarTenant()
	tenant.TargetCalendarID = nil
	agg := NewAggregator(cal, testLogger{})

	busy, err := agg.FetchDayBusy(context.Background(), tenant, romeTime(t, day, 0, 0))
	require.NoError(t, err)

	require.Len(t, busy.Intervals, 2)
	assert.Equal(t, domain.BusyInterval{StartMinutes: 0, DurationMinutes: 60}, busy.Intervals[0])
	assert.Equal(t, domain.BusyInterval{StartMinutes: 1380, DurationMinutes: 60}, busy.Intervals[1])
}

func TestAggregator_QueryWindowEndsAtLocalMidnightAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	tests := []struct {
		name   string
		date   time.Time
		dayLen time.Duration
	}{
		{"spring forward", time.Date(2026, 3, 29, 0, 0, 0, 0, loc), 23 * time.Hour},
		{"fall back", time.Date(2026, 10, 25, 0, 0, 0, 0, loc), 25 * time.Hour},
		{"plain day", time.Date(2026, 3, 13, 0, 0, 0, 0, loc), 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := &fakeCalendar{}
			agg := NewAggregator(cal, testLogger{})

			_, err := agg.FetchDayBusy(context.Background(), calendarTenant(), tt.date)
			require.NoError(t, err)

			assert.Equal(t, tt.date, cal.windowStart)
			assert.Equal(t, tt.date.Day(), cal.windowEnd.Day())
			assert.Equal(t, tt.dayLen-time.Second, cal.windowEnd.Sub(cal.windowStart))
		})
	}
}
