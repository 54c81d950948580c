package create_booking

import (
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
	createBooking "github.com/open2agenda/booking-service/internal/usecase/create_booking"
	"github.com/open2agenda/booking-service/pkg/types"
)

// CreateBookingRequest is the HTTP request model.
type CreateBookingRequest struct {
	ServiceID     string  `json:"serviceId"`
	Date          string  `json:"date"`      // "2026-03-15"
	StartTime     string  `json:"startTime"` // "10:00"
	ClientName    string  `json:"clientName"`
	ClientSurname string  `json:"clientSurname"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   string  `json:"clientPhone"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse is the HTTP response model.
type BookingResponse struct {
	ID              string   `json:"id"`
	ServiceID       string   `json:"serviceId"`
	ServiceTitle    string   `json:"serviceTitle"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	Warnings        []string `json:"warnings,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}

// ToUseCaseRequest parses dates and converts into the use case model.
func (r *CreateBookingRequest) ToUseCaseRequest(subdomain string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Subdomain:     subdomain,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		ClientName:    r.ClientName,
		ClientSurname: r.ClientSurname,
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		ServiceTitle:    resp.ServiceTitle,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Message:         resp.Message,
		Warnings:        resp.Warnings,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
