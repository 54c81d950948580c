package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/internal/integrations/googlecalendar"
)

// fallbackMessage is shown when the assistant is disabled or fails.
const fallbackMessage = "Grazie! La tua richiesta di prenotazione è stata registrata. Riceverai una conferma via email."

// buildCalendarEvent renders the booking as a calendar event in the tenant's
// business timezone. The description carries the client contact details so
// the owner can reach them from the calendar alone.
func buildCalendarEvent(tenant *domain.Tenant, booking *domain.Booking, start time.Time) googlecalendar.NewEvent {
	end := start.Add(time.Duration(booking.Service.DurationMinutes) * time.Minute)

	var description strings.Builder
	fmt.Fprintf(&description, "Cliente: %s %s\n", booking.ClientName, booking.ClientSurname)
	fmt.Fprintf(&description, "Email: %s\n", booking.ClientEmail)
	fmt.Fprintf(&description, "Telefono: %s\n", booking.ClientPhone)
	if booking.Notes != nil && *booking.Notes != "" {
		fmt.Fprintf(&description, "Note: %s\n", *booking.Notes)
	}

	return googlecalendar.NewEvent{
		Summary:     fmt.Sprintf("%s - %s %s", booking.Service.Title, booking.ClientName, booking.ClientSurname),
		Description: description.String(),
		Start:       start,
		End:         end,
		Timezone:    tenant.Timezone,
	}
}

// bookingTemplateParams builds the EmailJS template parameters shared by the
// client confirmation and the owner copy.
func bookingTemplateParams(tenant *domain.Tenant, booking *domain.Booking, toEmail string) map[string]string {
	params := map[string]string{
		"to_email":       toEmail,
		"business_name":  tenant.BusinessName,
		"client_name":    booking.ClientName,
		"client_surname": booking.ClientSurname,
		"service_title":  booking.Service.Title,
		"booking_date":   booking.Date.Format(domain.DateFormat),
		"booking_time":   booking.StartTime.String(),
		"status":         string(booking.Status),
	}
	if booking.Notes != nil {
		params["notes"] = *booking.Notes
	}
	return params
}

// confirmationPrompt asks the assistant for a short message in the tone of
// the business. Output is advisory only.
func confirmationPrompt(tenant *domain.Tenant, booking *domain.Booking) string {
	return fmt.Sprintf(
		"Scrivi un breve messaggio di conferma (massimo due frasi, tono cordiale) per il cliente %s che ha richiesto l'appuntamento %q presso %s il %s alle %s. La richiesta è in attesa di conferma.",
		booking.ClientName,
		booking.Service.Title,
		tenant.BusinessName,
		booking.Date.Format(domain.DateFormat),
		booking.StartTime,
	)
}
