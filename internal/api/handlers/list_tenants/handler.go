package list_tenants

import (
	"errors"
	"net/http"

	"github.com/open2agenda/booking-service/internal/api/handlers"
	"github.com/open2agenda/booking-service/internal/api/middleware"
	"github.com/open2agenda/booking-service/internal/service/catalog"
)

const msgAccessDenied = "access denied"

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

// Handle GET /api/v1/tenants
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	result, err := h.catalogService.ListTenants(r.Context(), caller.Role)
	if err != nil {
		if errors.Is(err, catalog.ErrAccessDenied) {
			h.logger.Warn("GET /tenants - access denied for role=%s", caller.Role)
			handlers.RespondForbidden(w, msgAccessDenied)
			return
		}
		h.logger.Error("GET /tenants - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
