package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open2agenda/booking-service/internal/domain"
	bookingRepo "github.com/open2agenda/booking-service/internal/infra/storage/booking"
	tenantRepo "github.com/open2agenda/booking-service/internal/infra/storage/tenant"
	"github.com/open2agenda/booking-service/internal/integrations/emailjs"
	"github.com/open2agenda/booking-service/internal/service/bookings/models"
	"github.com/open2agenda/booking-service/pkg/ptr"
	"github.com/open2agenda/booking-service/pkg/types"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings  map[string]*domain.Booking
	updateErr error

	updatedID     string
	updatedStatus domain.BookingStatus
	filter        domain.TenantBookingsFilter
	listed        []*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetByTenantWithFilter(_ context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.listed, nil
}

func (f *fakeBookingRepo) UpdateStatusFromPending(_ context.Context, id string, status domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

type fakeTenantRepo struct {
	tenant domain.Tenant
	err    error
}

func (f *fakeTenantRepo) GetByID(context.Context, string) (domain.Tenant, error) {
	if f.err != nil {
		return domain.Tenant{}, f.err
	}
	return f.tenant, nil
}

type fakeCalendar struct {
	deleteErr      error
	deletedEventID string
	calls          int
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, _, _, eventID string) error {
	f.calls++
	f.deletedEventID = eventID
	return f.deleteErr
}

type fakeMail struct {
	sendErr  error
	statuses []string
	sentTo   []string
}

func (f *fakeMail) Send(_ context.Context, _ emailjs.Credentials, params map[string]string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.statuses = append(f.statuses, params["status"])
	f.sentTo = append(f.sentTo, params["to_email"])
	return nil
}

func notifyingTenant() domain.Tenant {
	return domain.Tenant{
		ID:                 "t-1",
		Subdomain:          "acme",
		BusinessName:       "Studio Acme",
		OwnerEmail:         "owner@acme.it",
		TargetCalendarID:   ptr.Ptr("target@group.calendar.google.com"),
		ServiceAccountJSON: ptr.Ptr(`{"type":"service_account"}`),
		EmailServiceID:     ptr.Ptr("svc"),
		EmailTemplateID:    ptr.Ptr("tpl"),
		EmailPublicKey:     ptr.Ptr("key"),
	}
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:              "b-1",
		TenantID:        "t-1",
		Service:         domain.Service{ID: "svc-1", Title: "Consulenza", DurationMinutes: 60},
		Date:            time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		ClientName:      "Mario",
		ClientSurname:   "Rossi",
		ClientEmail:     "mario.rossi@example.com",
		ClientPhone:     "+39 333 1234567",
		Status:          domain.StatusPending,
		CalendarEventID: ptr.Ptr("evt-1"),
	}
}

type fixture struct {
	bookings *fakeBookingRepo
	tenants  *fakeTenantRepo
	calendar *fakeCalendar
	mail     *fakeMail
	svc      *Service
}

func newFixture(booking *domain.Booking) *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{bookings: map[string]*domain.Booking{}},
		tenants:  &fakeTenantRepo{tenant: notifyingTenant()},
		calendar: &fakeCalendar{},
		mail:     &fakeMail{},
	}
	if booking != nil {
		f.bookings.bookings[booking.ID] = booking
	}
	f.svc = NewService(f.bookings, f.tenants, f.calendar, f.mail, testLogger{})
	return f
}

func ownerRequest(status string) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		BookingID:      "b-1",
		Status:         status,
		CallerRole:     domain.RoleOwner,
		CallerTenantID: "t-1",
	}
}

func TestUpdateStatus_Confirm(t *testing.T) {
	f := newFixture(pendingBooking())

	resp, err := f.svc.UpdateStatus(context.Background(), ownerRequest("CONFIRMED"))
	require.NoError(t, err)

	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, "b-1", f.bookings.updatedID)
	assert.Equal(t, domain.StatusConfirmed, f.bookings.updatedStatus)

	// Confirming keeps the calendar event.
	assert.Zero(t, f.calendar.calls)
	// Status mail to client and owner.
	assert.Equal(t, []string{"mario.rossi@example.com", "owner@acme.it"}, f.mail.sentTo)
	assert.Equal(t, []string{"CONFIRMED", "CONFIRMED"}, f.mail.statuses)
}

func TestUpdateStatus_CancelDeletesCalendarEvent(t *testing.T) {
	f := newFixture(pendingBooking())

	resp, err := f.svc.UpdateStatus(context.Background(), ownerRequest("CANCELLED"))
	require.NoError(t, err)

	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, 1, f.calendar.calls)
	assert.Equal(t, "evt-1", f.calendar.deletedEventID)
}

func TestUpdateStatus_CancelWithoutEventSkipsCalendar(t *testing.T) {
	booking := pendingBooking()
	booking.CalendarEventID = nil
	f := newFixture(booking)

	_, err := f.svc.UpdateStatus(context.Background(), ownerRequest("CANCELLED"))
	require.NoError(t, err)

	assert.Zero(t, f.calendar.calls)
}

func TestUpdateStatus_SideEffectFailuresDoNotFail(t *testing.T) {
	f := newFixture(pendingBooking())
	f.calendar.deleteErr = errors.New("calendar down")
	f.mail.sendErr = errors.New("mail down")

	resp, err := f.svc.UpdateStatus(context.Background(), ownerRequest("CANCELLED"))

	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
}

func TestUpdateStatus_TenantLoadFailureSkipsSideEffects(t *testing.T) {
	f := newFixture(pendingBooking())
	f.tenants.err = tenantRepo.ErrTenantNotFound

	resp, err := f.svc.UpdateStatus(context.Background(), ownerRequest("CANCELLED"))

	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Zero(t, f.calendar.calls)
	assert.Empty(t, f.mail.sentTo)
}

func TestUpdateStatus_InvalidTargetStatus(t *testing.T) {
	f := newFixture(pendingBooking())

	_, err := f.svc.UpdateStatus(context.Background(), ownerRequest("DONE"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// PENDING is a valid status but never a transition target.
	_, err = f.svc.UpdateStatus(context.Background(), ownerRequest("PENDING"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.UpdateStatus(context.Background(), ownerRequest("CONFIRMED"))

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_AccessControl(t *testing.T) {
	f := newFixture(pendingBooking())

	otherOwner := ownerRequest("CONFIRMED")
	otherOwner.CallerTenantID = "t-2"
	_, err := f.svc.UpdateStatus(context.Background(), otherOwner)
	assert.ErrorIs(t, err, ErrAccessDenied)

	master := ownerRequest("CONFIRMED")
	master.CallerRole = domain.RoleMaster
	master.CallerTenantID = ""
	_, err = f.svc.UpdateStatus(context.Background(), master)
	assert.NoError(t, err)
}

func TestUpdateStatus_TerminalBookingRejected(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusConfirmed
	f := newFixture(booking)

	_, err := f.svc.UpdateStatus(context.Background(), ownerRequest("CANCELLED"))

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_ConcurrentTransitionLosesCleanly(t *testing.T) {
	f := newFixture(pendingBooking())
	f.bookings.updateErr = bookingRepo.ErrNotPending

	_, err := f.svc.UpdateStatus(context.Background(), ownerRequest("CONFIRMED"))

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetTenantBookings_FilterAndRole(t *testing.T) {
	f := newFixture(nil)
	f.bookings.listed = []*domain.Booking{pendingBooking()}

	date := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	resp, err := f.svc.GetTenantBookings(context.Background(), &models.GetTenantBookingsRequest{
		TenantID:       "t-1",
		CallerRole:     domain.RoleOwner,
		CallerTenantID: "t-1",
		Date:           &date,
		Status:         ptr.Ptr("PENDING"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "b-1", resp.Bookings[0].ID)
	assert.Equal(t, "t-1", f.bookings.filter.TenantID)
	require.NotNil(t, f.bookings.filter.Status)
	assert.Equal(t, domain.StatusPending, *f.bookings.filter.Status)
}

func TestGetTenantBookings_AccessDenied(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.GetTenantBookings(context.Background(), &models.GetTenantBookingsRequest{
		TenantID:       "t-1",
		CallerRole:     domain.RoleOwner,
		CallerTenantID: "t-2",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetTenantBookings_InvalidStatusFilter(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.GetTenantBookings(context.Background(), &models.GetTenantBookingsRequest{
		TenantID:   "t-1",
		CallerRole: domain.RoleMaster,
		Status:     ptr.Ptr("DONE"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
