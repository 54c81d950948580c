package get_available_slots

import (
	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/service/availability"
)

// applyStoredBookings marks resolved slots unavailable when they overlap an
// active stored booking. Same strict half-open overlap as the calendar check:
// touching boundaries do not conflict.
func applyStoredBookings(resolved []availability.ResolvedSlot, serviceDuration int, bookings []*domain.Booking) []Slot {
	slots := make([]Slot, 0, len(resolved))

	for _, rs := range resolved {
		slot := Slot{
			ID:        rs.Slot.ID,
			StartTime: rs.Slot.StartTime,
			Available: rs.Available,
		}

		if slot.Available {
			startMinutes, err := rs.Slot.StartTime.Minutes()
			if err != nil {
				slot.Available = false
			} else {
				endMinutes := startMinutes + serviceDuration
				for _, booking := range bookings {
					if !booking.IsActive() {
						continue
					}
					if bookingOverlaps(booking, startMinutes, endMinutes) {
						slot.Available = false
						break
					}
				}
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

func bookingOverlaps(booking *domain.Booking, startMinutes, endMinutes int) bool {
	bookingStart, err := booking.StartTime.Minutes()
	if err != nil {
		return false
	}
	bookingEnd := bookingStart + booking.Service.DurationMinutes

	return startMinutes < bookingEnd && endMinutes > bookingStart
}
