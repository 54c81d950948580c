package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/open2agenda/booking-service/internal/domain"
	bookingRepo "github.com/open2agenda/booking-service/internal/infra/storage/booking"
	"github.com/open2agenda/booking-service/internal/integrations/emailjs"
	"github.com/open2agenda/booking-service/internal/service/bookings/models"
)

// Service manages the admin side of bookings: listing and the
// PENDING -> CONFIRMED|CANCELLED transition.
type Service struct {
	bookingRepo    BookingRepository
	tenantRepo     TenantRepository
	calendarClient CalendarClient
	mailClient     MailClient
	logger         Logger
}

// NewService creates a bookings service.
func NewService(
	bookingRepo BookingRepository,
	tenantRepo TenantRepository,
	calendarClient CalendarClient,
	mailClient MailClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		tenantRepo:     tenantRepo,
		calendarClient: calendarClient,
		mailClient:     mailClient,
		logger:         logger,
	}
}

// UpdateStatus moves a PENDING booking to CONFIRMED or CANCELLED.
//
// The repository update is guarded on the current status, so a concurrent
// transition loses cleanly. On CANCELLED, a stored calendar event is deleted
// best-effort; the status change never rolls back on a failed side effect.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking=%s, status=%s, role=%s", req.BookingID, req.Status, req.CallerRole)

	if req.BookingID == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	next, ok := domain.ParseBookingStatus(req.Status)
	if !ok || next == domain.StatusPending {
		s.logger.Warn("UpdateStatus: invalid target status %q for booking=%s", req.Status, req.BookingID)
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !req.CallerRole.CanManage(req.CallerTenantID, booking.TenantID) {
		s.logger.Warn("UpdateStatus: role=%s tenant=%s denied for booking=%s", req.CallerRole, req.CallerTenantID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking=%s", booking.Status, next, req.BookingID)
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatusFromPending(ctx, booking.ID, next); err != nil {
		if errors.Is(err, bookingRepo.ErrNotPending) {
			s.logger.Warn("UpdateStatus: booking=%s left PENDING concurrently", req.BookingID)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("UpdateStatus: failed to update booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}
	booking.Status = next

	s.logger.Info("UpdateStatus: booking=%s moved to %s", booking.ID, next)

	s.runSideEffects(ctx, booking)

	return models.FromDomainBooking(booking), nil
}

// GetTenantBookings lists a tenant's bookings for the admin panel.
func (s *Service) GetTenantBookings(ctx context.Context, req *models.GetTenantBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTenantBookings: tenant=%s, role=%s", req.TenantID, req.CallerRole)

	if req.TenantID == "" {
		return nil, fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}

	if !req.CallerRole.CanManage(req.CallerTenantID, req.TenantID) {
		s.logger.Warn("GetTenantBookings: role=%s tenant=%s denied for tenant=%s", req.CallerRole, req.CallerTenantID, req.TenantID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantBookings: invalid filter for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantBookings: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantBookings: fetched %d bookings for tenant=%s", len(bookings), req.TenantID)
	return models.FromDomainBookingList(bookings), nil
}

// runSideEffects compensates the calendar event on cancellation and sends the
// status mail. Failures are logged only.
func (s *Service) runSideEffects(ctx context.Context, booking *domain.Booking) {
	tenant, err := s.tenantRepo.GetByID(ctx, booking.TenantID)
	if err != nil {
		s.logger.Warn("UpdateStatus: failed to load tenant=%s for side effects: %v", booking.TenantID, err)
		return
	}

	if booking.Status == domain.StatusCancelled && booking.CalendarEventID != nil {
		if calendarID, ok := tenant.EventCalendarID(); ok {
			if err := s.calendarClient.DeleteEvent(ctx, *tenant.ServiceAccountJSON, calendarID, *booking.CalendarEventID); err != nil {
				s.logger.Warn("UpdateStatus: failed to delete calendar event %s for booking=%s: %v",
					*booking.CalendarEventID, booking.ID, err)
			}
		}
	}

	if !tenant.HasMailConfig() {
		return
	}

	creds := emailjs.Credentials{
		ServiceID:  *tenant.EmailServiceID,
		TemplateID: *tenant.EmailTemplateID,
		PublicKey:  *tenant.EmailPublicKey,
	}
	params := map[string]string{
		"to_email":       booking.ClientEmail,
		"business_name":  tenant.BusinessName,
		"client_name":    booking.ClientName,
		"client_surname": booking.ClientSurname,
		"service_title":  booking.Service.Title,
		"booking_date":   booking.Date.Format(domain.DateFormat),
		"booking_time":   booking.StartTime.String(),
		"status":         string(booking.Status),
	}

	if err := s.mailClient.Send(ctx, creds, params); err != nil {
		s.logger.Warn("UpdateStatus: status mail failed for booking=%s: %v", booking.ID, err)
	}

	params["to_email"] = tenant.OwnerEmail
	if err := s.mailClient.Send(ctx, creds, params); err != nil {
		s.logger.Warn("UpdateStatus: owner status mail failed for booking=%s: %v", booking.ID, err)
	}
}
