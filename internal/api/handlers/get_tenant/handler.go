package get_tenant

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/open2agenda/booking-service/internal/api/handlers"
	"github.com/open2agenda/booking-service/internal/service/catalog"
)

const (
	msgTenantNotFound   = "tenant not found"
	msgMissingSubdomain = "subdomain is required"
)

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

// Handle GET /api/v1/tenants/{subdomain}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subdomain := mux.Vars(r)["subdomain"]
	if subdomain == "" {
		handlers.RespondBadRequest(w, msgMissingSubdomain)
		return
	}

	profile, err := h.catalogService.GetBySubdomain(r.Context(), subdomain)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/%s - tenant not found", subdomain)
			handlers.RespondNotFound(w, msgTenantNotFound)
		case errors.Is(err, catalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /tenants/%s - failed: %v", subdomain, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}
