package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
)

// ResolvedSlot is one candidate start time with its availability verdict.
type ResolvedSlot struct {
	Slot      domain.TimeSlot
	Available bool
}

// DayResolution is the availability of every candidate slot on one date,
// labelled with how trustworthy the underlying calendar data is. The label
// only speaks for dates where the calendars were consulted; a rule-rejected
// date reports ok without any fetch.
type DayResolution struct {
	Slots  []ResolvedSlot
	Status domain.CalendarStatus
}

// Resolver decides which candidate slots are bookable for a service on a date.
type Resolver struct {
	busyFetcher BusyFetcher
	logger      Logger
}

// NewResolver creates a slot availability resolver.
func NewResolver(busyFetcher BusyFetcher, logger Logger) *Resolver {
	return &Resolver{
		busyFetcher: busyFetcher,
		logger:      logger,
	}
}

// ResolveSlots evaluates the candidate catalog against the service
// availability rule and the tenant's busy calendar time.
//
// A date the rule does not offer resolves every slot unavailable without
// touching the calendars; the Status stays ok and says nothing about calendar
// health, since no calendar was consulted. Missing or failing calendar data
// never blocks resolution: slots are resolved against the intervals actually
// obtained and the result is labelled degraded or offline so callers can
// decide how much to trust it.
func (r *Resolver) ResolveSlots(ctx context.Context, tenant *domain.Tenant, service *domain.Service, date time.Time, candidates []domain.TimeSlot) (*DayResolution, error) {
	resolution := &DayResolution{
		Slots:  make([]ResolvedSlot, 0, len(candidates)),
		Status: domain.CalendarOK,
	}

	if !service.Availability.DateOfferable(date) {
		for _, slot := range candidates {
			resolution.Slots = append(resolution.Slots, ResolvedSlot{Slot: slot})
		}
		return resolution, nil
	}

	busy, err := r.busyFetcher.FetchDayBusy(ctx, tenant, date)
	if err != nil {
		if !errors.Is(err, ErrNoCalendars) {
			return nil, fmt.Errorf("%w: fetch day busy: %v", ErrInternal, err)
		}
		busy = &domain.DayBusy{}
	}
	resolution.Status = busy.Status()

	for _, slot := range candidates {
		resolution.Slots = append(resolution.Slots, ResolvedSlot{
			Slot:      slot,
			Available: r.slotAvailable(service, slot, busy),
		})
	}

	return resolution, nil
}

// SlotAvailable re-checks one exact slot. Used by the commit pipeline to
// validate the requested slot with fresh calendar data.
func (r *Resolver) SlotAvailable(ctx context.Context, tenant *domain.Tenant, service *domain.Service, date time.Time, slot domain.TimeSlot) (bool, domain.CalendarStatus, error) {
	if !service.Availability.DateOfferable(date) {
		return false, domain.CalendarOK, nil
	}

	busy, err := r.busyFetcher.FetchDayBusy(ctx, tenant, date)
	if err != nil {
		if !errors.Is(err, ErrNoCalendars) {
			return false, domain.CalendarOK, fmt.Errorf("%w: fetch day busy: %v", ErrInternal, err)
		}
		busy = &domain.DayBusy{}
	}

	return r.slotAvailable(service, slot, busy), busy.Status(), nil
}

func (r *Resolver) slotAvailable(service *domain.Service, slot domain.TimeSlot, busy *domain.DayBusy) bool {
	if !service.Availability.StartTimeOfferable(slot.StartTime) {
		return false
	}

	startMinutes, err := slot.StartTime.Minutes()
	if err != nil {
		r.logger.Warn("slotAvailable: candidate slot %s has invalid start time %q", slot.ID, slot.StartTime)
		return false
	}

	return !busy.AnyOverlap(startMinutes, startMinutes+service.DurationMinutes)
}
