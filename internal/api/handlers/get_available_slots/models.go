package get_available_slots

import (
	"github.com/open2agenda/booking-service/internal/domain"
	getAvailableSlots "github.com/open2agenda/booking-service/internal/usecase/get_available_slots"
)

// SlotResponse is one candidate slot with its verdict.
type SlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
}

// AvailableSlotsResponse is the HTTP response model.
type AvailableSlotsResponse struct {
	Date           string         `json:"date"`
	ServiceID      string         `json:"serviceId"`
	CalendarStatus string         `json:"calendarStatus"`
	Slots          []SlotResponse `json:"slots"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		ServiceID:      resp.ServiceID,
		CalendarStatus: string(resp.CalendarStatus),
		Slots:          make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:        slot.ID,
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
		})
	}
	return out
}
