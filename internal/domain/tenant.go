package domain

import "time"

// Role is the opaque, already-authenticated caller role resolved by the
// external auth layer. The core only distinguishes the two capabilities.
type Role string

const (
	// RoleOwner manages its own tenant.
	RoleOwner Role = "owner"
	// RoleMaster manages any tenant.
	RoleMaster Role = "master"
)

// CanManage reports whether the role may administer the given tenant.
func (r Role) CanManage(callerTenantID, tenantID string) bool {
	switch r {
	case RoleMaster:
		return true
	case RoleOwner:
		return callerTenantID == tenantID
	default:
		return false
	}
}

// Tenant is one business using the booking system, identified by a subdomain.
// Calendar and notification credentials are plain configuration threaded into
// the aggregator and commit pipeline; there is no ambient lookup.
type Tenant struct {
	ID           string
	Subdomain    string
	BusinessName string
	OwnerEmail   string

	// Timezone is the single fixed business timezone (IANA name).
	Timezone string

	// BridgeCalendarID is the intermediary calendar used for availability
	// checks when direct access to the owner's calendar is restricted.
	BridgeCalendarID *string
	// TargetCalendarID is the calendar new booking events are written to.
	// When the owner's calendar is directly readable it also feeds busy checks.
	TargetCalendarID *string
	// ServiceAccountJSON holds the Google service-account credentials.
	ServiceAccountJSON *string

	EmailServiceID  *string
	EmailTemplateID *string
	EmailPublicKey  *string

	Services []Service

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalendarIDs returns the distinct calendar identities to aggregate busy time
// from. Empty when the tenant has no usable calendar configuration.
func (t *Tenant) CalendarIDs() []string {
	if t.ServiceAccountJSON == nil || *t.ServiceAccountJSON == "" {
		return nil
	}

	ids := make([]string, 0, 2)
	seen := make(map[string]struct{}, 2)
	for _, id := range []*string{t.BridgeCalendarID, t.TargetCalendarID} {
		if id == nil || *id == "" {
			continue
		}
		if _, dup := seen[*id]; dup {
			continue
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	return ids
}

// EventCalendarID is the calendar new events are inserted into.
func (t *Tenant) EventCalendarID() (string, bool) {
	if t.ServiceAccountJSON == nil || *t.ServiceAccountJSON == "" {
		return "", false
	}
	if t.TargetCalendarID != nil && *t.TargetCalendarID != "" {
		return *t.TargetCalendarID, true
	}
	if t.BridgeCalendarID != nil && *t.BridgeCalendarID != "" {
		return *t.BridgeCalendarID, true
	}
	return "", false
}

// HasMailConfig reports whether notification sending is configured.
func (t *Tenant) HasMailConfig() bool {
	return t.EmailServiceID != nil && *t.EmailServiceID != "" &&
		t.EmailTemplateID != nil && *t.EmailTemplateID != "" &&
		t.EmailPublicKey != nil && *t.EmailPublicKey != ""
}

// Location resolves the business timezone, defaulting when unset or invalid.
func (t *Tenant) Location() *time.Location {
	name := t.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			return time.UTC
		}
	}
	return loc
}

// ServiceByID finds a service in the tenant's current set.
func (t *Tenant) ServiceByID(id string) (*Service, bool) {
	for i := range t.Services {
		if t.Services[i].ID == id {
			return &t.Services[i], true
		}
	}
	return nil, false
}
