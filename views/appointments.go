package views

import (
	"fmt"
	"strings"

	"carelink/models"
)

// RenderAppointments lists the user's appointments in received order.
func RenderAppointments(items []models.Appointment) string {
	if len(items) == 0 {
		return "No appointments yet.\n"
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s %s", item.Date, item.Time)
		if item.Status != "" {
			fmt.Fprintf(&b, "  [%s]", item.Status)
		}
		b.WriteString("\n")
		if item.Notes != "" {
			fmt.Fprintf(&b, "  %s\n", item.Notes)
		}
		if item.Symptoms != "" {
			fmt.Fprintf(&b, "  Symptoms: %s\n", item.Symptoms)
		}
	}
	return b.String()
}
