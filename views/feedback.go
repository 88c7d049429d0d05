package views

import (
	"fmt"
	"strings"

	"carelink/models"
)

const shortDate = "Jan 2, 2006"

// Stars renders a 1..5 rating as filled and empty stars, always five total.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// RenderFeedback lists reviews in the order received; the backend owns the
// sort.
func RenderFeedback(items []models.Feedback) string {
	if len(items) == 0 {
		return "No feedback yet.\n"
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s • %s\n", item.UserName, item.ServiceType)
		fmt.Fprintf(&b, "  %s  %s\n", Stars(item.Rating), item.CreatedAt.Format(shortDate))
		fmt.Fprintf(&b, "  %s\n\n", item.Feedback)
	}
	return b.String()
}
