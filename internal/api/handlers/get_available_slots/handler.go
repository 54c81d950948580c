package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/open2agenda/booking-service/internal/api/handlers"
	"github.com/open2agenda/booking-service/internal/domain"
	getAvailableSlots "github.com/open2agenda/booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "serviceId query parameter is required"
	msgInvalidDate      = "invalid date, expected YYYY-MM-DD"
	msgTenantNotFound   = "tenant not found"
	msgServiceNotFound  = "service not found"
	msgDateInPast       = "date is in the past"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{subdomain}/available-slots?serviceId=...&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subdomain := mux.Vars(r)["subdomain"]

	serviceID := r.URL.Query().Get("serviceId")
	if serviceID == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Subdomain: subdomain,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/%s/available-slots - tenant not found", subdomain)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /tenants/%s/available-slots - service %s not found", subdomain, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /tenants/%s/available-slots - failed: %v", subdomain, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
