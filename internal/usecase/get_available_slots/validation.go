package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest checks the request fields before any IO.
func validateRequest(req *Request) error {
	if req.Subdomain == "" {
		return fmt.Errorf("%w: subdomain is required", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate rejects dates strictly before today in the given location.
func validateDate(requestDate, now time.Time, loc *time.Location) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	requested := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, loc)

	if requested.Before(today) {
		return ErrInvalidDate
	}
	return nil
}
