package googlecalendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client talks to the Google Calendar API on behalf of tenants. Credentials
// are per-tenant service-account JSON passed into every call; the client
// itself holds only timeouts and instrumentation.
type Client struct {
	timeout    time.Duration
	maxResults int64
	log        Logger
	metrics    MetricsRecorder
}

// NewClient creates a calendar client. metrics may be nil.
func NewClient(timeout time.Duration, maxResults int64, log Logger, metrics MetricsRecorder) *Client {
	return &Client{
		timeout:    timeout,
		maxResults: maxResults,
		log:        log,
		metrics:    metrics,
	}
}

// serviceFor builds a Calendar service authorized as the tenant's
// service-account robot with the given scope.
func (c *Client) serviceFor(ctx context.Context, credentialsJSON, scope string) (*calendar.Service, error) {
	jwtConfig, err := google.JWTConfigFromJSON([]byte(credentialsJSON), scope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%w: create service: %v", ErrRequestFailed, err)
	}
	return srv, nil
}

// ListDayEvents fetches the events of one calendar between dayStart and dayEnd
// (tenant-local bounds). All-day source events are normalized to local
// midnight-to-midnight ranges.
func (c *Client) ListDayEvents(ctx context.Context, credentialsJSON, calendarID string, dayStart, dayEnd time.Time) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	srv, err := c.serviceFor(ctx, credentialsJSON, calendar.CalendarReadonlyScope)
	if err != nil {
		c.observe("list_events", err)
		return nil, err
	}

	call := srv.Events.List(calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		MaxResults(c.maxResults).
		Context(ctx)

	result, err := call.Do()
	c.observe("list_events", err)
	if err != nil {
		return nil, fmt.Errorf("%w: list events for calendar %s: %v", ErrRequestFailed, calendarID, err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		event, ok := c.normalizeEvent(item, dayStart.Location())
		if !ok {
			c.log.Warn("googlecalendar: skipping event %s with unparseable times on calendar %s", item.Id, calendarID)
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

func (c *Client) normalizeEvent(item *calendar.Event, loc *time.Location) (Event, bool) {
	if item.Start == nil || item.End == nil {
		return Event{}, false
	}

	event := Event{ID: item.Id, Summary: item.Summary}

	if item.Start.DateTime != "" {
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return Event{}, false
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return Event{}, false
		}
		event.Start = start.In(loc)
		event.End = end.In(loc)
		return event, true
	}

	// All-day event: date only, end date exclusive per the Calendar API.
	start, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
	if err != nil {
		return Event{}, false
	}
	end, err := time.ParseInLocation("2006-01-02", item.End.Date, loc)
	if err != nil {
		return Event{}, false
	}
	event.Start = start
	event.End = end
	event.AllDay = true
	return event, true
}

// InsertEvent writes a booking event and returns its ID.
func (c *Client) InsertEvent(ctx context.Context, credentialsJSON, calendarID string, event NewEvent) (string, error) {
	if event.Summary == "" || event.End.Before(event.Start) {
		return "", ErrInvalidEvent
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	srv, err := c.serviceFor(ctx, credentialsJSON, calendar.CalendarScope)
	if err != nil {
		c.observe("insert_event", err)
		return "", err
	}

	payload := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
	}
	for _, email := range event.Attendees {
		payload.Attendees = append(payload.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := srv.Events.Insert(calendarID, payload).Context(ctx).Do()
	c.observe("insert_event", err)
	if err != nil {
		return "", fmt.Errorf("%w: insert event into calendar %s: %v", ErrRequestFailed, calendarID, err)
	}

	c.log.Info("googlecalendar: created event %s on calendar %s", created.Id, calendarID)
	return created.Id, nil
}

// DeleteEvent removes a previously inserted event.
func (c *Client) DeleteEvent(ctx context.Context, credentialsJSON, calendarID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	srv, err := c.serviceFor(ctx, credentialsJSON, calendar.CalendarScope)
	if err != nil {
		c.observe("delete_event", err)
		return err
	}

	err = srv.Events.Delete(calendarID, eventID).Context(ctx).Do()
	c.observe("delete_event", err)
	if err != nil {
		return fmt.Errorf("%w: delete event %s from calendar %s: %v", ErrRequestFailed, eventID, calendarID, err)
	}

	c.log.Info("googlecalendar: deleted event %s from calendar %s", eventID, calendarID)
	return nil
}

func (c *Client) observe(operation string, err error) {
	if c.metrics != nil {
		c.metrics.ObserveCalendarRequest(operation, err)
	}
}
