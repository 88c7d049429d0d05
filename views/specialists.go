// Package views turns fetched collections into rendered text fragments.
// Renderers are pure: same input, same output, no fetching and no state.
package views

import (
	"fmt"
	"strings"

	"carelink/models"
)

// NoSpecialistsMessage is the placeholder for an empty result set.
const NoSpecialistsMessage = "No specialists found in your area."

// RenderSpecialists produces one card per specialist, or the placeholder
// when the collection is empty.
func RenderSpecialists(specialists []models.Specialist) string {
	if len(specialists) == 0 {
		return NoSpecialistsMessage + "\n"
	}

	var b strings.Builder
	for _, s := range specialists {
		b.WriteString(RenderSpecialistCard(s))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSpecialistCard renders a single specialist. The distance badge
// appears only when the server computed one, formatted to one decimal.
func RenderSpecialistCard(s models.Specialist) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Name)
	fmt.Fprintf(&b, "  %s • %s\n", s.Specialty, s.City)
	fmt.Fprintf(&b, "  %s\n", s.Contact)
	fmt.Fprintf(&b, "  Experience: %d years\n", s.Experience)
	fmt.Fprintf(&b, "  Rating: %.1f/5\n", s.Rating)
	if s.Distance != nil {
		fmt.Fprintf(&b, "  [%.1f km]\n", *s.Distance)
	}
	fmt.Fprintf(&b, "  Book: book %s  (%s)\n", s.ID, s.Name)
	return b.String()
}
