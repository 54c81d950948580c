package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/open2agenda/booking-service/internal/api/handlers"
	"github.com/open2agenda/booking-service/internal/api/middleware"
	"github.com/open2agenda/booking-service/internal/service/bookings"
	bookingModels "github.com/open2agenda/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "access denied"
	msgInvalidStatus      = "status must be CONFIRMED or CANCELLED"
	msgInvalidTransition  = "only pending bookings can change status"
)

// UpdateStatusRequest is the HTTP request model.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

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

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%s/status - invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.bookingsService.UpdateStatus(r.Context(), &bookingModels.UpdateStatusRequest{
		BookingID:      bookingID,
		Status:         req.Status,
		CallerRole:     caller.Role,
		CallerTenantID: caller.TenantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%s/status - booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/%s/status - access denied for role=%s tenant=%s",
				bookingID, caller.Role, caller.TenantID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/%s/status - transition to %s rejected", bookingID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/%s/status - failed: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%s/status - booking moved to %s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
