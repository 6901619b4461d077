package assistant

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	keywordLastAppointment      = "LAST_APPOINTMENT"
	keywordUpcomingAppointments = "UPCOMING_APPOINTMENTS"
)

func buildPrompt(
	today string,
	practitioners []models.Practitioner,
	types []models.AppointmentType,
	history []Turn,
	message string,
) string {

	var b strings.Builder

	b.WriteString("You are a medical appointment scheduling assistant.\n")
	fmt.Fprintf(&b, "Today's date is %s.\n\n", today)

	b.WriteString("Recognize what the user wants:\n")
	b.WriteString("- If they want to book an appointment, extract:\n")
	b.WriteString("  1. practitioner (by name or specialization, answer with the practitioner id)\n")
	b.WriteString("  2. appointment_type\n")
	b.WriteString("  3. appointment_date (convert words like 'tomorrow' to YYYY-MM-DD)\n")
	fmt.Fprintf(&b, "- If the user asks for their last appointment or most recent booking, reply with the keyword: %s\n", keywordLastAppointment)
	fmt.Fprintf(&b, "- If the user asks for appointments this week or upcoming appointments, reply with the keyword: %s\n\n", keywordUpcomingAppointments)

	b.WriteString("Available practitioners:\n")
	for _, p := range practitioners {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", p.ID, p.FullName, p.Specialization)
	}

	b.WriteString("Appointment types:\n")
	for _, t := range types {
		fmt.Fprintf(&b, "- %s\n", t.ID)
	}

	b.WriteString("Conversation so far:\n")
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Text)
	}
	fmt.Fprintf(&b, "Latest user message: %q\n\n", message)

	b.WriteString("Respond ONLY in one of these formats:\n")
	b.WriteString(`- If booking intent detected and all info found: { "practitioner": "PR001", "appointment_type": "Dental Cleanup", "appointment_date": "2025-11-17" }` + "\n")
	b.WriteString("- If info missing: ask ONE follow-up question.\n")
	fmt.Fprintf(&b, "- If they want last appointment: output ONLY %s\n", keywordLastAppointment)
	fmt.Fprintf(&b, "- If they want upcoming appointments: output ONLY %s\n", keywordUpcomingAppointments)

	return b.String()
}
