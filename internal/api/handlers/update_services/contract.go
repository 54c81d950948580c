package update_services

import (
	"context"

	catalogModels "github.com/open2agenda/booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	UpdateServices(ctx context.Context, req *catalogModels.UpdateServicesRequest) (*catalogModels.TenantProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
