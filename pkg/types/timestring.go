package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimeString is returned for values not in HH:MM form.
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange is returned when arithmetic leaves the 00:00-23:59 day range.
	ErrTimeOutOfRange = errors.New("time out of day range")
)

// TimeString is a wall-clock time of day in "HH:MM" form.
// It is the unit the slot catalog, availability windows and busy intervals
// are expressed in, and it maps directly onto a Postgres TIME column.
type TimeString string

// NewTimeString truncates a time.Time to its HH:MM component.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" value.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes converts minutes-of-day back into "HH:MM".
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", ErrTimeOutOfRange
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is unset.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the HH:MM form and range.
func (t TimeString) Validate() error {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if parsed.Format("15:04") != string(t) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes returns the value as minutes since midnight.
// Invalid values yield an error; callers that already validated may ignore it.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward, failing if it leaves the day.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + minutes)
}

// IsBefore reports t < other. Lexicographic compare is correct for zero-padded HH:MM.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports t > other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Value implements driver.Valuer for TIME columns.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Accepts TIME values ("15:04:05"), strings and time.Time.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres TIME comes back as HH:MM:SS; keep the HH:MM part.
	if len(s) >= 5 {
		s = s[:5]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return err
	}
	*t = ts
	return nil
}
