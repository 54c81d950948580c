package update_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/open2agenda/booking-service/internal/api/handlers"
	"github.com/open2agenda/booking-service/internal/api/middleware"
	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/service/catalog"
	catalogModels "github.com/open2agenda/booking-service/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgTenantNotFound     = "tenant not found"
	msgAccessDenied       = "access denied"
)

// UpdateServicesRequest replaces the tenant's whole service set.
type UpdateServicesRequest struct {
	Services []domain.Service `json:"services"`
}

type Handler struct {
	catalogService CatalogService
	logger         Logger
}

func NewHandler(catalogService CatalogService, logger Logger) *Handler {
	return &Handler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// Handle PUT /api/v1/tenants/{tenantId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]

	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req UpdateServicesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/%s/services - invalid request body: %v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.catalogService.UpdateServices(r.Context(), &catalogModels.UpdateServicesRequest{
		TenantID:       tenantID,
		CallerRole:     caller.Role,
		CallerTenantID: caller.TenantID,
		Services:       req.Services,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrTenantNotFound):
			h.logger.Warn("PUT /tenants/%s/services - tenant not found", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /tenants/%s/services - access denied for role=%s tenant=%s",
				tenantID, caller.Role, caller.TenantID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalog.ErrInvalidService), errors.Is(err, catalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /tenants/%s/services - failed: %v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/%s/services - service set replaced, %d services", tenantID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
