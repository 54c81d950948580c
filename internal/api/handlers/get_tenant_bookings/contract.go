package get_tenant_bookings

import (
	"context"

	bookingModels "github.com/open2agenda/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetTenantBookings(ctx context.Context, req *bookingModels.GetTenantBookingsRequest) (*bookingModels.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
