package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/open2agenda/booking-service/internal/api/handlers"
	createBooking "github.com/open2agenda/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateFormat  = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgTenantNotFound     = "tenant not found"
	msgServiceNotFound    = "service not found"
	msgInvalidSlot        = "start time is not a bookable slot"
	msgInvalidDate        = "invalid booking date"
	msgSlotUnavailable    = "the selected slot is no longer available"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{subdomain}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subdomain := mux.Vars(r)["subdomain"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/%s/bookings - invalid request body: %v", subdomain, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(subdomain)
	if err != nil {
		h.logger.Warn("POST /tenants/%s/bookings - failed to parse request: %v", subdomain, err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /tenants/%s/bookings - slot taken: service=%s date=%s time=%s",
				subdomain, req.ServiceID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrTenantNotFound):
			h.logger.Warn("POST /tenants/%s/bookings - tenant not found", subdomain)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /tenants/%s/bookings - service %s not found", subdomain, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /tenants/%s/bookings - failed: %v", subdomain, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/%s/bookings - booking created: id=%s", subdomain, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
