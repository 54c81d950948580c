package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/open2agenda/booking-service/internal/domain"
	tenantRepo "github.com/open2agenda/booking-service/internal/infra/storage/tenant"
)

// UseCase resolves the bookable candidate slots of one service on one date.
type UseCase struct {
	tenantRepo   TenantRepository
	bookingRepo  BookingRepository
	resolver     SlotResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the use case with the production clock.
func NewUseCase(
	tenantRepo TenantRepository,
	bookingRepo BookingRepository,
	resolver SlotResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:   tenantRepo,
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the slot availability query.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: subdomain=%s, service=%s, date=%s",
		req.Subdomain, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Validate request fields.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the tenant by subdomain.
	tenant, err := uc.tenantRepo.GetBySubdomain(ctx, req.Subdomain)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			uc.logger.Warn("GetAvailableSlots: tenant not found for subdomain=%s", req.Subdomain)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get tenant for subdomain=%s: %v", req.Subdomain, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Look the service up in the tenant's current set.
	service, ok := tenant.ServiceByID(req.ServiceID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: service id=%s not found for tenant=%s", req.ServiceID, tenant.ID)
		return nil, ErrServiceNotFound
	}

	// 4. Reject past dates in the tenant's business timezone.
	if err := validateDate(req.Date, uc.timeProvider.Now(), tenant.Location()); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Resolve the candidate catalog against rule and calendar busy time.
	resolution, err := uc.resolver.ResolveSlots(ctx, &tenant, service, req.Date, domain.CandidateSlots())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: resolver failed for tenant=%s: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
	}

	// 6. Overlay active stored bookings of the same date.
	bookings, err := uc.bookingRepo.GetByTenantWithFilter(ctx, domain.TenantBookingsFilter{
		TenantID: tenant.ID,
		Date:     &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for tenant=%s: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots := applyStoredBookings(resolution.Slots, service.DurationMinutes, bookings)

	uc.logger.Info("GetAvailableSlots: resolved %d slots for tenant=%s, service=%s, date=%s, calendar=%s",
		len(slots), tenant.ID, req.ServiceID, req.Date.Format(domain.DateFormat), resolution.Status)

	return &Response{
		Date:           req.Date,
		ServiceID:      req.ServiceID,
		CalendarStatus: resolution.Status,
		Slots:          slots,
	}, nil
}
