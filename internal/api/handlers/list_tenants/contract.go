package list_tenants

import (
	"context"

	"github.com/open2agenda/booking-service/internal/domain"
	catalogModels "github.com/open2agenda/booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListTenants(ctx context.Context, callerRole domain.Role) (*catalogModels.TenantListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
