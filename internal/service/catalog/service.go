package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/open2agenda/booking-service/internal/domain"
	tenantRepo "github.com/open2agenda/booking-service/internal/infra/storage/tenant"
	"github.com/open2agenda/booking-service/internal/service/catalog/models"
)

// Service manages tenant profiles and their bookable service sets.
type Service struct {
	tenantRepo TenantRepository
	logger     Logger
}

// NewService creates a catalog service.
func NewService(tenantRepo TenantRepository, logger Logger) *Service {
	return &Service{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// GetBySubdomain returns the public profile the widget renders.
func (s *Service) GetBySubdomain(ctx context.Context, subdomain string) (*models.TenantProfileResponse, error) {
	s.logger.Info("GetBySubdomain: subdomain=%s", subdomain)

	if subdomain == "" {
		return nil, fmt.Errorf("%w: subdomain is required", ErrInvalidInput)
	}

	tenant, err := s.tenantRepo.GetBySubdomain(ctx, subdomain)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("GetBySubdomain: no tenant for subdomain=%s", subdomain)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("GetBySubdomain: repository error for subdomain=%s: %v", subdomain, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	return models.FromDomainTenant(&tenant), nil
}

// ListTenants returns every tenant profile. Master only.
func (s *Service) ListTenants(ctx context.Context, callerRole domain.Role) (*models.TenantListResponse, error) {
	s.logger.Info("ListTenants: role=%s", callerRole)

	if callerRole != domain.RoleMaster {
		s.logger.Warn("ListTenants: role=%s denied", callerRole)
		return nil, ErrAccessDenied
	}

	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListTenants: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to list tenants: %v", ErrInternal, err)
	}

	return models.FromDomainTenantList(tenants), nil
}

// UpdateServices replaces the tenant's whole service set after validating
// every entry. Committed bookings keep their snapshots regardless.
func (s *Service) UpdateServices(ctx context.Context, req *models.UpdateServicesRequest) (*models.TenantProfileResponse, error) {
	s.logger.Info("UpdateServices: tenant=%s, services=%d, role=%s", req.TenantID, len(req.Services), req.CallerRole)

	if req.TenantID == "" {
		return nil, fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}

	if !req.CallerRole.CanManage(req.CallerTenantID, req.TenantID) {
		s.logger.Warn("UpdateServices: role=%s tenant=%s denied for tenant=%s", req.CallerRole, req.CallerTenantID, req.TenantID)
		return nil, ErrAccessDenied
	}

	seen := make(map[string]struct{}, len(req.Services))
	for i := range req.Services {
		svc := &req.Services[i]
		if err := svc.Validate(); err != nil {
			s.logger.Warn("UpdateServices: service id=%s invalid: %v", svc.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidService, err)
		}
		if _, dup := seen[svc.ID]; dup {
			s.logger.Warn("UpdateServices: duplicate service id=%s", svc.ID)
			return nil, fmt.Errorf("%w: duplicate service id %s", ErrInvalidService, svc.ID)
		}
		seen[svc.ID] = struct{}{}
	}

	tenant, err := s.tenantRepo.UpdateServices(ctx, req.TenantID, req.Services)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("UpdateServices: tenant=%s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("UpdateServices: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to update services: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateServices: tenant=%s now has %d services", tenant.ID, len(tenant.Services))
	return models.FromDomainTenant(&tenant), nil
}
