package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "CONFIRMED", "CANCELLED"} {
		status, ok := ParseBookingStatus(valid)
		assert.True(t, ok)
		assert.Equal(t, BookingStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "DONE"} {
		_, ok := ParseBookingStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"confirmed is terminal", StatusConfirmed, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"no reopening", StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
}

func TestBooking_EndTime(t *testing.T) {
	b := &Booking{
		StartTime: "10:00",
		Service:   Service{DurationMinutes: 90},
	}

	end, err := b.EndTime()
	assert.NoError(t, err)
	assert.Equal(t, "11:30", end.String())
}

func TestRole_CanManage(t *testing.T) {
	assert.True(t, RoleMaster.CanManage("anything", "t-1"))
	assert.True(t, RoleOwner.CanManage("t-1", "t-1"))
	assert.False(t, RoleOwner.CanManage("t-1", "t-2"))
	assert.False(t, Role("guest").CanManage("t-1", "t-1"))
}
