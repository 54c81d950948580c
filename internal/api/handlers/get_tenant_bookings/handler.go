package get_tenant_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/open2agenda/booking-service/internal/api/handlers"
	"github.com/open2agenda/booking-service/internal/api/middleware"
	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/service/bookings"
	bookingModels "github.com/open2agenda/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidDate  = "invalid date, expected YYYY-MM-DD"
	msgAccessDenied = "access denied"
)

type Handler struct {
	bookingsService BookingsService
	logger          Logger
}

func NewHandler(bookingsService BookingsService, logger Logger) *Handler {
	return &Handler{
		bookingsService: bookingsService,
		logger:          logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/bookings?date=...&status=...&includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]

	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	req := &bookingModels.GetTenantBookingsRequest{
		TenantID:         tenantID,
		CallerRole:       caller.Role,
		CallerTenantID:   caller.TenantID,
		IncludeCancelled: r.URL.Query().Get("includeCancelled") == "true",
	}

	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.bookingsService.GetTenantBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /tenants/%s/bookings - access denied for role=%s tenant=%s",
				tenantID, caller.Role, caller.TenantID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /tenants/%s/bookings - failed: %v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
