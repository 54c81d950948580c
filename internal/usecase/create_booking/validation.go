package create_booking

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/open2agenda/booking-service/internal/domain"
)

var validate = validator.New()

// clientDetails mirrors the widget contact form fields.
type clientDetails struct {
	Name    string `validate:"required,max=100"`
	Surname string `validate:"required,max=100"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"required,min=5,max=30"`
}

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

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	details := clientDetails{
		Name:    req.ClientName,
		Surname: req.ClientSurname,
		Email:   req.ClientEmail,
		Phone:   req.ClientPhone,
	}
	if err := validate.Struct(details); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
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
