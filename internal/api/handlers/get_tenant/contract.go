package get_tenant

import (
	"context"

	catalogModels "github.com/open2agenda/booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	GetBySubdomain(ctx context.Context, subdomain string) (*catalogModels.TenantProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
