package catalog

import (
	"context"

	"github.com/open2agenda/booking-service/internal/domain"
)

// TenantRepository persists tenants and their service sets.
type TenantRepository interface {
	GetByID(ctx context.Context, tenantID string) (domain.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (domain.Tenant, error)
	List(ctx context.Context) ([]domain.Tenant, error)
	UpdateServices(ctx context.Context, tenantID string, services []domain.Service) (domain.Tenant, error)
}

// Logger is the leveled printf logger consumed by this package.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
