package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidService is returned when a service definition fails validation.
	ErrInvalidService = errors.New("invalid service definition")
)

// Service is a bookable offering of a tenant. The service set is managed as a
// whole by the admin surface and stored as one JSONB document per tenant;
// bookings carry a snapshot so later edits never rewrite history.
type Service struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	DurationMinutes int          `json:"durationMinutes"`
	Price           float64      `json:"price"`
	ImageURL        string       `json:"imageUrl,omitempty"`
	Availability    Availability `json:"availability"`
}

// Validate checks the invariants the admin surface must not break.
func (s *Service) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidService)
	}
	if s.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidService)
	}
	if s.DurationMinutes < MinServiceDurationMinutes || s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration %d minutes out of range", ErrInvalidService, s.DurationMinutes)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidService)
	}
	if s.Availability.Rule() == nil {
		return fmt.Errorf("%w: missing availability rule", ErrInvalidService)
	}
	if weekly, ok := s.Availability.Rule().(Weekly); ok {
		if len(weekly.Days) == 0 {
			return fmt.Errorf("%w: weekly availability without days", ErrInvalidService)
		}
		if weekly.Start != nil && weekly.End != nil && weekly.Start.After(*weekly.End) {
			return fmt.Errorf("%w: availability start after end", ErrInvalidService)
		}
	}
	if dateRange, ok := s.Availability.Rule().(DateRange); ok {
		if dateRange.Start != nil && dateRange.End != nil && dateRange.Start.After(*dateRange.End) {
			return fmt.Errorf("%w: availability start after end", ErrInvalidService)
		}
	}
	return nil
}
