package update_booking_status

import (
	"context"

	bookingModels "github.com/open2agenda/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	UpdateStatus(ctx context.Context, req *bookingModels.UpdateStatusRequest) (*bookingModels.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
