package models

import (
	"github.com/open2agenda/booking-service/internal/domain"
)

// UpdateServicesRequest replaces a tenant's whole service set. Services
// missing from the list are implicitly removed.
type UpdateServicesRequest struct {
	TenantID       string
	CallerRole     domain.Role
	CallerTenantID string
	Services       []domain.Service
}

// TenantProfileResponse is the public widget view of one tenant.
// Credentials never leave the server.
type TenantProfileResponse struct {
	ID           string           `json:"id"`
	Subdomain    string           `json:"subdomain"`
	BusinessName string           `json:"businessName"`
	Timezone     string           `json:"timezone"`
	Services     []domain.Service `json:"services"`
}

// TenantListResponse lists tenant profiles for the master panel.
type TenantListResponse struct {
	Tenants []TenantProfileResponse `json:"tenants"`
	Total   int                     `json:"total"`
}

// FromDomainTenant converts a tenant into its public profile.
func FromDomainTenant(t *domain.Tenant) *TenantProfileResponse {
	return &TenantProfileResponse{
		ID:           t.ID,
		Subdomain:    t.Subdomain,
		BusinessName: t.BusinessName,
		Timezone:     t.Timezone,
		Services:     t.Services,
	}
}

// FromDomainTenantList converts a tenant slice into the list view.
func FromDomainTenantList(tenants []domain.Tenant) *TenantListResponse {
	out := &TenantListResponse{
		Tenants: make([]TenantProfileResponse, 0, len(tenants)),
		Total:   len(tenants),
	}
	for i := range tenants {
		out.Tenants = append(out.Tenants, *FromDomainTenant(&tenants[i]))
	}
	return out
}
