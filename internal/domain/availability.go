package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/open2agenda/booking-service/pkg/types"
)

// AvailabilityMode identifies the rule variant.
type AvailabilityMode string

const (
	ModeAlways    AvailabilityMode = "always"
	ModeDateRange AvailabilityMode = "range"
	ModeWeekly    AvailabilityMode = "weekly"
)

// AvailabilityRule decides whether a service is offerable on a calendar date
// and, independently, whether a start time falls inside its daily window.
// Rules are pure: no I/O, no error paths. A malformed rule (e.g. a weekly rule
// without days) is simply never offerable.
type AvailabilityRule interface {
	Mode() AvailabilityMode
	DateOfferable(date time.Time) bool
	StartTimeOfferable(start types.TimeString) bool
}

// Always is bookable on any date at any start time.
type Always struct{}

func (Always) Mode() AvailabilityMode { return ModeAlways }

func (Always) DateOfferable(time.Time) bool { return true }

func (Always) StartTimeOfferable(types.TimeString) bool { return true }

// DateRange is bookable only for dates within [Start, End], inclusive.
// A nil bound is unbounded on that side. No daily-hour restriction.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (DateRange) Mode() AvailabilityMode { return ModeDateRange }

func (r DateRange) DateOfferable(date time.Time) bool {
	return withinDateBounds(date, r.Start, r.End)
}

func (DateRange) StartTimeOfferable(types.TimeString) bool { return true }

// Weekly is bookable on dates whose weekday is in Days, optionally constrained
// to an overall [Start, End] range, with start times in [TimeStart, TimeEnd).
type Weekly struct {
	Start     *time.Time
	End       *time.Time
	Days      []time.Weekday
	TimeStart *types.TimeString
	TimeEnd   *types.TimeString
}

func (Weekly) Mode() AvailabilityMode { return ModeWeekly }

func (w Weekly) DateOfferable(date time.Time) bool {
	if !withinDateBounds(date, w.Start, w.End) {
		return false
	}
	// An empty day set can only come from malformed input: never offerable.
	for _, day := range w.Days {
		if date.Weekday() == day {
			return true
		}
	}
	return false
}

func (w Weekly) StartTimeOfferable(start types.TimeString) bool {
	if w.TimeStart != nil && start.IsBefore(*w.TimeStart) {
		return false
	}
	// End bound exclusive: a slot starting exactly at closing time is rejected.
	if w.TimeEnd != nil && !start.IsBefore(*w.TimeEnd) {
		return false
	}
	return true
}

func withinDateBounds(date time.Time, start, end *time.Time) bool {
	d := DateOnly(date)
	if start != nil && d.Before(DateOnly(*start)) {
		return false
	}
	if end != nil && d.After(DateOnly(*end)) {
		return false
	}
	return true
}

// DateOnly truncates a time to midnight, keeping its location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Availability wraps an AvailabilityRule with the {"mode": ...} JSON envelope
// the tenant service set is stored and exchanged in. The zero value carries no
// rule and is never offerable.
type Availability struct {
	rule AvailabilityRule
}

// NewAvailability wraps a concrete rule.
func NewAvailability(rule AvailabilityRule) Availability {
	return Availability{rule: rule}
}

// Rule returns the underlying variant, nil for the zero value.
func (a Availability) Rule() AvailabilityRule { return a.rule }

func (a Availability) Mode() AvailabilityMode {
	if a.rule == nil {
		return ""
	}
	return a.rule.Mode()
}

func (a Availability) DateOfferable(date time.Time) bool {
	if a.rule == nil {
		return false
	}
	return a.rule.DateOfferable(date)
}

func (a Availability) StartTimeOfferable(start types.TimeString) bool {
	if a.rule == nil {
		return false
	}
	return a.rule.StartTimeOfferable(start)
}

// availabilityJSON is the storage/wire envelope. Fields are interpreted per
// mode; unmarshalling builds the matching variant so illegal combinations
// (e.g. timeStart under mode "always") are dropped at the boundary.
type availabilityJSON struct {
	Mode       AvailabilityMode `json:"mode"`
	StartDate  *string          `json:"startDate,omitempty"`
	EndDate    *string          `json:"endDate,omitempty"`
	DaysOfWeek []int            `json:"daysOfWeek,omitempty"`
	TimeStart  *string          `json:"timeStart,omitempty"`
	TimeEnd    *string          `json:"timeEnd,omitempty"`
}

func (a Availability) MarshalJSON() ([]byte, error) {
	env := availabilityJSON{Mode: a.Mode()}

	switch rule := a.rule.(type) {
	case Always:
	case DateRange:
		env.StartDate = formatDatePtr(rule.Start)
		env.EndDate = formatDatePtr(rule.End)
	case Weekly:
		env.StartDate = formatDatePtr(rule.Start)
		env.EndDate = formatDatePtr(rule.End)
		env.DaysOfWeek = make([]int, len(rule.Days))
		for i, day := range rule.Days {
			env.DaysOfWeek[i] = int(day)
		}
		if rule.TimeStart != nil {
			s := rule.TimeStart.String()
			env.TimeStart = &s
		}
		if rule.TimeEnd != nil {
			s := rule.TimeEnd.String()
			env.TimeEnd = &s
		}
	case nil:
		return nil, fmt.Errorf("availability: cannot marshal empty rule")
	}

	return json.Marshal(env)
}

func (a *Availability) UnmarshalJSON(data []byte) error {
	var env availabilityJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Mode {
	case ModeAlways:
		a.rule = Always{}
	case ModeDateRange:
		start, err := parseDatePtr(env.StartDate)
		if err != nil {
			return err
		}
		end, err := parseDatePtr(env.EndDate)
		if err != nil {
			return err
		}
		a.rule = DateRange{Start: start, End: end}
	case ModeWeekly:
		start, err := parseDatePtr(env.StartDate)
		if err != nil {
			return err
		}
		end, err := parseDatePtr(env.EndDate)
		if err != nil {
			return err
		}
		days := make([]time.Weekday, 0, len(env.DaysOfWeek))
		for _, d := range env.DaysOfWeek {
			if d < 0 || d > 6 {
				return fmt.Errorf("availability: day of week %d out of range", d)
			}
			days = append(days, time.Weekday(d))
		}
		timeStart, err := parseTimePtr(env.TimeStart)
		if err != nil {
			return err
		}
		timeEnd, err := parseTimePtr(env.TimeEnd)
		if err != nil {
			return err
		}
		a.rule = Weekly{Start: start, End: end, Days: days, TimeStart: timeStart, TimeEnd: timeEnd}
	default:
		return fmt.Errorf("availability: unknown mode %q", env.Mode)
	}

	return nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateFormat)
	return &s
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateFormat, *s)
	if err != nil {
		return nil, fmt.Errorf("availability: invalid date %q: %v", *s, err)
	}
	return &t, nil
}

func parseTimePtr(s *string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("availability: invalid time %q: %v", *s, err)
	}
	return &ts, nil
}
