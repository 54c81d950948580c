package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open2agenda/booking-service/internal/domain"
	tenantRepo "github.com/open2agenda/booking-service/internal/infra/storage/tenant"
	"github.com/open2agenda/booking-service/internal/service/availability"
	"github.com/open2agenda/booking-service/pkg/types"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeTenantRepo struct {
	tenants map[string]domain.Tenant
}

func (f *fakeTenantRepo) GetBySubdomain(_ context.Context, subdomain string) (domain.Tenant, error) {
	tenant, ok := f.tenants[subdomain]
	if !ok {
		return domain.Tenant{}, tenantRepo.ErrTenantNotFound
	}
	return tenant, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByTenantWithFilter(context.Context, domain.TenantBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeResolver struct {
	resolution *availability.DayResolution
}

func (f *fakeResolver) ResolveSlots(_ context.Context, _ *domain.Tenant, _ *domain.Service, _ time.Time, candidates []domain.TimeSlot) (*availability.DayResolution, error) {
	if f.resolution != nil {
		return f.resolution, nil
	}
	out := &availability.DayResolution{Status: domain.CalendarOK}
	for _, slot := range candidates {
		out.Slots = append(out.Slots, availability.ResolvedSlot{Slot: slot, Available: true})
	}
	return out, nil
}

func testService() domain.Service {
	return domain.Service{
		ID:              "svc-1",
		Title:           "Consulenza",
		DurationMinutes: 60,
		Availability:    domain.NewAvailability(domain.Always{}),
	}
}

func newTestUseCase(tenants *fakeTenantRepo, bookings *fakeBookingRepo, resolver *fakeResolver, now time.Time) *UseCase {
	uc := NewUseCase(tenants, bookings, resolver, testLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func TestExecute_TenantNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeTenantRepo{}, &fakeBookingRepo{}, &fakeResolver{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		Subdomain: "ghost",
		ServiceID: "svc-1",
		Date:      time.Now().AddDate(0, 0, 1),
	})

	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	tenants := &fakeTenantRepo{tenants: map[string]domain.Tenant{
		"acme": {ID: "t-1", Subdomain: "acme", Services: []domain.Service{testService()}},
	}}
	uc := newTestUseCase(tenants, &fakeBookingRepo{}, &fakeResolver{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{
		Subdomain: "acme",
		ServiceID: "svc-404",
		Date:      time.Now().AddDate(0, 0, 1),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PastDateRejected(t *testing.T) {
	now := time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)
	tenants := &fakeTenantRepo{tenants: map[string]domain.Tenant{
		"acme": {ID: "t-1", Subdomain: "acme", Timezone: "UTC", Services: []domain.Service{testService()}},
	}}
	uc := newTestUseCase(tenants, &fakeBookingRepo{}, &fakeResolver{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		Subdomain: "acme",
		ServiceID: "svc-1",
		Date:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Same day is allowed.
	resp, err := uc.Execute(context.Background(), &Request{
		Subdomain: "acme",
		ServiceID: "svc-1",
		Date:      time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 8)
}

func TestExecute_StoredBookingsBlockSlots(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)

	tenants := &fakeTenantRepo{tenants: map[string]domain.Tenant{
		"acme": {ID: "t-1", Subdomain: "acme", Timezone: "UTC", Services: []domain.Service{testService()}},
	}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID:        "b-1",
			StartTime: types.TimeString("10:00"),
			Status:    domain.StatusPending,
			Service:   domain.Service{ID: "svc-1", DurationMinutes: 90},
		},
		{
			ID:        "b-2",
			StartTime: types.TimeString("15:00"),
			Status:    domain.StatusCancelled, // freed slot
			Service:   domain.Service{ID: "svc-1", DurationMinutes: 60},
		},
	}}
	uc := newTestUseCase(tenants, bookings, &fakeResolver{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Subdomain: "acme",
		ServiceID: "svc-1",
		Date:      date,
	})
	require.NoError(t, err)

	byStart := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartTime.String()] = slot.Available
	}

	// 10:00-11:30 active booking blocks 10:00 and 11:00.
	assert.False(t, byStart["10:00"])
	assert.False(t, byStart["11:00"])
	assert.True(t, byStart["09:00"])
	assert.True(t, byStart["12:00"])
	// Cancelled booking does not block.
	assert.True(t, byStart["15:00"])
}

func TestExecute_CalendarStatusPassedThrough(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	tenants := &fakeTenantRepo{tenants: map[string]domain.Tenant{
		"acme": {ID: "t-1", Subdomain: "acme", Timezone: "UTC", Services: []domain.Service{testService()}},
	}}
	resolver := &fakeResolver{resolution: &availability.DayResolution{
		Status: domain.CalendarDegraded,
		Slots: []availability.ResolvedSlot{
			{Slot: domain.TimeSlot{ID: "t1", StartTime: "09:00"}, Available: true},
		},
	}}
	uc := newTestUseCase(tenants, &fakeBookingRepo{}, resolver, now)

	resp, err := uc.Execute(context.Background(), &Request{
		Subdomain: "acme",
		ServiceID: "svc-1",
		Date:      time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CalendarDegraded, resp.CalendarStatus)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeTenantRepo{}, &fakeBookingRepo{}, &fakeResolver{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Subdomain: "acme", Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Subdomain: "acme", ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
