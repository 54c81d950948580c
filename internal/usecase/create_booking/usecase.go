package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/open2agenda/booking-service/internal/domain"
	bookingRepo "github.com/open2agenda/booking-service/internal/infra/storage/booking"
	tenantRepo "github.com/open2agenda/booking-service/internal/infra/storage/tenant"
	"github.com/open2agenda/booking-service/internal/integrations/emailjs"
)

// UseCase commits one booking: re-validate, persist PENDING atomically, then
// best-effort side effects (calendar event, notification mail, confirmation
// text). Side-effect failures become warnings, never errors.
type UseCase struct {
	tenantRepo      TenantRepository
	bookingRepo     BookingRepository
	resolver        SlotResolver
	calendarClient  CalendarClient
	mailClient      MailClient
	assistantClient AssistantClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case with the production clock.
func NewUseCase(
	tenantRepo TenantRepository,
	bookingRepo BookingRepository,
	resolver SlotResolver,
	calendarClient CalendarClient,
	mailClient MailClient,
	assistantClient AssistantClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:      tenantRepo,
		bookingRepo:     bookingRepo,
		resolver:        resolver,
		calendarClient:  calendarClient,
		mailClient:      mailClient,
		assistantClient: assistantClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the commit pipeline for one submission.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: subdomain=%s, service=%s, date=%s, time=%s",
		req.Subdomain, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate request fields and client details.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the tenant by subdomain.
	tenant, err := uc.tenantRepo.GetBySubdomain(ctx, req.Subdomain)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			uc.logger.Warn("CreateBooking: tenant not found for subdomain=%s", req.Subdomain)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get tenant for subdomain=%s: %v", req.Subdomain, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Look the service up in the tenant's current set.
	service, ok := tenant.ServiceByID(req.ServiceID)
	if !ok {
		uc.logger.Warn("CreateBooking: service id=%s not found for tenant=%s", req.ServiceID, tenant.ID)
		return nil, ErrServiceNotFound
	}

	// 4. Reject past dates and start times outside the catalog.
	if err := validateDate(req.Date, uc.timeProvider.Now(), tenant.Location()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	slot, ok := domain.CandidateSlotByStart(req.StartTime)
	if !ok {
		uc.logger.Warn("CreateBooking: start time %s is not a catalog slot", req.StartTime)
		return nil, ErrInvalidSlot
	}

	// 5. Re-validate against fresh calendar data before touching the DB.
	// Degraded or offline calendars do not block: the stored-booking check
	// inside the transaction stays authoritative for what this system owns.
	available, calendarStatus, err := uc.resolver.SlotAvailable(ctx, &tenant, service, req.Date, slot)
	if err != nil {
		uc.logger.Error("CreateBooking: slot re-validation failed for tenant=%s: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to re-validate slot: %v", ErrInternal, err)
	}
	if !available {
		uc.logger.Warn("CreateBooking: slot %s on %s no longer available for tenant=%s",
			req.StartTime, req.Date.Format(domain.DateFormat), tenant.ID)
		return nil, ErrSlotNoLongerAvailable
	}

	startMinutes, err := slot.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid catalog slot %s: %v", ErrInternal, slot.ID, err)
	}
	endMinutes := startMinutes + service.DurationMinutes

	booking := &domain.Booking{
		ID:            uuid.NewString(),
		TenantID:      tenant.ID,
		Service:       *service,
		Date:          req.Date,
		StartTime:     req.StartTime,
		ClientName:    req.ClientName,
		ClientSurname: req.ClientSurname,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		Notes:         req.Notes,
		Status:        domain.StatusPending,
	}

	// 6. Persist atomically. The day's active bookings are read with
	// FOR UPDATE, re-checked for overlap, then the insert runs; the partial
	// unique index is the last line against a concurrent writer.
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.GetByTenantWithFilter(txCtx, domain.TenantBookingsFilter{
			TenantID: tenant.ID,
			Date:     &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for tenant=%s: %v", tenant.ID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		for _, other := range existing {
			if !other.IsActive() {
				continue
			}
			if overlapsBooking(other, startMinutes, endMinutes) {
				uc.logger.Warn("CreateBooking: slot %s overlaps stored booking id=%s", req.StartTime, other.ID)
				return ErrSlotNoLongerAvailable
			}
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: lost insert race for slot %s on %s", req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotNoLongerAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%s for tenant=%s", created.ID, tenant.ID)

	// 7. Best-effort side effects. The booking is committed; nothing below
	// may fail the request.
	warnings := uc.runSideEffects(ctx, &tenant, created)
	if calendarStatus != domain.CalendarOK {
		warnings = append(warnings, fmt.Sprintf("calendar availability data was %s at submit time", calendarStatus))
	}

	message := uc.confirmationMessage(ctx, &tenant, created)

	return &Response{
		ID:              created.ID,
		ServiceID:       created.Service.ID,
		ServiceTitle:    created.Service.Title,
		Date:            created.Date,
		StartTime:       created.StartTime,
		DurationMinutes: created.Service.DurationMinutes,
		Status:          string(created.Status),
		Message:         message,
		Warnings:        warnings,
		CreatedAt:       created.CreatedAt,
	}, nil
}

// runSideEffects writes the calendar event and sends the notification mail.
// Every failure is logged and reported as a warning.
func (uc *UseCase) runSideEffects(ctx context.Context, tenant *domain.Tenant, booking *domain.Booking) []string {
	var warnings []string

	if calendarID, ok := tenant.EventCalendarID(); ok {
		loc := tenant.Location()
		startMinutes, err := booking.StartTime.Minutes()
		if err == nil {
			start := time.Date(booking.Date.Year(), booking.Date.Month(), booking.Date.Day(), 0, 0, 0, 0, loc).
				Add(time.Duration(startMinutes) * time.Minute)

			eventID, err := uc.calendarClient.InsertEvent(ctx, *tenant.ServiceAccountJSON, calendarID, buildCalendarEvent(tenant, booking, start))
			if err != nil {
				uc.logger.Warn("CreateBooking: calendar event insert failed for booking id=%s: %v", booking.ID, err)
				warnings = append(warnings, "calendar event was not created")
			} else if err := uc.bookingRepo.SetCalendarEventID(ctx, booking.ID, eventID); err != nil {
				uc.logger.Warn("CreateBooking: failed to store calendar event id for booking id=%s: %v", booking.ID, err)
				warnings = append(warnings, "calendar event id was not stored")
			}
		}
	}

	if tenant.HasMailConfig() {
		creds := emailjs.Credentials{
			ServiceID:  *tenant.EmailServiceID,
			TemplateID: *tenant.EmailTemplateID,
			PublicKey:  *tenant.EmailPublicKey,
		}

		if err := uc.mailClient.Send(ctx, creds, bookingTemplateParams(tenant, booking, booking.ClientEmail)); err != nil {
			uc.logger.Warn("CreateBooking: client mail failed for booking id=%s: %v", booking.ID, err)
			warnings = append(warnings, "client notification mail was not sent")
		}

		if err := uc.mailClient.Send(ctx, creds, bookingTemplateParams(tenant, booking, tenant.OwnerEmail)); err != nil {
			uc.logger.Warn("CreateBooking: owner mail failed for booking id=%s: %v", booking.ID, err)
			warnings = append(warnings, "owner notification mail was not sent")
		}
	}

	return warnings
}

// confirmationMessage asks the assistant for the customer text, falling back
// to the static message.
func (uc *UseCase) confirmationMessage(ctx context.Context, tenant *domain.Tenant, booking *domain.Booking) string {
	message, err := uc.assistantClient.Generate(ctx, confirmationPrompt(tenant, booking))
	if err != nil {
		uc.logger.Warn("CreateBooking: assistant unavailable for booking id=%s, using fallback: %v", booking.ID, err)
		return fallbackMessage
	}
	return message
}

func overlapsBooking(booking *domain.Booking, startMinutes, endMinutes int) bool {
	bookingStart, err := booking.StartTime.Minutes()
	if err != nil {
		return false
	}
	bookingEnd := bookingStart + booking.Service.DurationMinutes

	return startMinutes < bookingEnd && endMinutes > bookingStart
}
