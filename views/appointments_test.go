package views

import (
	"strings"
	"testing"

	"carelink/models"
)

func TestRenderAppointments(t *testing.T) {
	items := []models.Appointment{
		{Date: "2025-04-01", Time: "10:30", Status: "scheduled", Notes: "Appointment with Dr. Aren Sharma", Symptoms: "headache"},
		{Date: "2025-04-09", Time: "09:00"},
	}

	out := RenderAppointments(items)
	for _, want := range []string{
		"2025-04-01 10:30  [scheduled]",
		"Appointment with Dr. Aren Sharma",
		"Symptoms: headache",
		"2025-04-09 09:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderAppointmentsEmpty(t *testing.T) {
	if out := RenderAppointments(nil); !strings.Contains(out, "No appointments yet.") {
		t.Errorf("empty list should show placeholder, got %q", out)
	}
}
