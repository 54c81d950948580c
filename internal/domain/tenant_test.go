package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open2agenda/booking-service/pkg/ptr"
)

func TestTenant_CalendarIDs(t *testing.T) {
	tests := []struct {
		name   string
		tenant Tenant
		want   []string
	}{
		{
			name:   "no service account means no calendars",
			tenant: Tenant{BridgeCalendarID: ptr.Ptr("bridge@cal"), TargetCalendarID: ptr.Ptr("owner@cal")},
			want:   nil,
		},
		{
			name: "bridge and target",
			tenant: Tenant{
				ServiceAccountJSON: ptr.Ptr(`{"type":"service_account"}`),
				BridgeCalendarID:   ptr.Ptr("bridge@cal"),
				TargetCalendarID:   ptr.Ptr("owner@cal"),
			},
			want: []string{"bridge@cal", "owner@cal"},
		},
		{
			name: "duplicate identities collapse",
			tenant: Tenant{
				ServiceAccountJSON: ptr.Ptr(`{"type":"service_account"}`),
				BridgeCalendarID:   ptr.Ptr("same@cal"),
				TargetCalendarID:   ptr.Ptr("same@cal"),
			},
			want: []string{"same@cal"},
		},
		{
			name: "empty ids skipped",
			tenant: Tenant{
				ServiceAccountJSON: ptr.Ptr(`{"type":"service_account"}`),
				TargetCalendarID:   ptr.Ptr("owner@cal"),
			},
			want: []string{"owner@cal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tenant.CalendarIDs())
		})
	}
}

func TestTenant_EventCalendarID(t *testing.T) {
	sa := ptr.Ptr(`{"type":"service_account"}`)

	target := Tenant{ServiceAccountJSON: sa, BridgeCalendarID: ptr.Ptr("bridge@cal"), TargetCalendarID: ptr.Ptr("owner@cal")}
	id, ok := target.EventCalendarID()
	require.True(t, ok)
	assert.Equal(t, "owner@cal", id)

	bridgeOnly := Tenant{ServiceAccountJSON: sa, BridgeCalendarID: ptr.Ptr("bridge@cal")}
	id, ok = bridgeOnly.EventCalendarID()
	require.True(t, ok)
	assert.Equal(t, "bridge@cal", id)

	none := Tenant{BridgeCalendarID: ptr.Ptr("bridge@cal")}
	_, ok = none.EventCalendarID()
	assert.False(t, ok)
}

func TestTenant_Location(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	assert.Equal(t, rome, (&Tenant{}).Location())
	assert.Equal(t, rome, (&Tenant{Timezone: "not/a-zone"}).Location())

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, berlin, (&Tenant{Timezone: "Europe/Berlin"}).Location())
}

func TestTenant_HasMailConfig(t *testing.T) {
	full := Tenant{
		EmailServiceID:  ptr.Ptr("svc"),
		EmailTemplateID: ptr.Ptr("tpl"),
		EmailPublicKey:  ptr.Ptr("key"),
	}
	assert.True(t, full.HasMailConfig())

	partial := Tenant{EmailServiceID: ptr.Ptr("svc")}
	assert.False(t, partial.HasMailConfig())
	assert.False(t, (&Tenant{}).HasMailConfig())
}

func TestTenant_ServiceByID(t *testing.T) {
	tenant := Tenant{Services: []Service{
		{ID: "svc-1", Title: "Consulenza"},
		{ID: "svc-2", Title: "Visita"},
	}}

	svc, ok := tenant.ServiceByID("svc-2")
	require.True(t, ok)
	assert.Equal(t, "Visita", svc.Title)

	_, ok = tenant.ServiceByID("svc-3")
	assert.False(t, ok)
}
