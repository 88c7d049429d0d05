package views

import (
	"fmt"
	"strings"

	"carelink/models"
)

// BillingSummary holds the aggregates shown on the billing overview. For
// collections whose statuses are only pending/paid, Total == Pending + Paid.
type BillingSummary struct {
	Total   float64
	Pending float64
	Paid    float64
	Count   int
}

// Summarize computes the billing aggregates over the full collection.
func Summarize(items []models.BillingItem) BillingSummary {
	summary := BillingSummary{Count: len(items)}
	for _, item := range items {
		summary.Total += item.Amount
		switch item.Status {
		case models.BillingPending:
			summary.Pending += item.Amount
		case models.BillingPaid:
			summary.Paid += item.Amount
		}
	}
	return summary
}

// statusLabel capitalizes the status for display. Conditional logic keeps
// comparing the lowercase wire value.
func statusLabel(status string) string {
	if status == "" {
		return status
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

// RenderBillingSummary renders the four stat lines of the overview.
func RenderBillingSummary(items []models.BillingItem) string {
	s := Summarize(items)
	var b strings.Builder
	fmt.Fprintf(&b, "Total Balance: ₹%.2f\n", s.Total)
	fmt.Fprintf(&b, "Amount Due:    ₹%.2f\n", s.Pending)
	fmt.Fprintf(&b, "Total Paid:    ₹%.2f\n", s.Paid)
	fmt.Fprintf(&b, "Invoices:      %d\n", s.Count)
	return b.String()
}

// RenderRecentInvoices shows the first two items in received order, with a
// pay hint on items still pending.
func RenderRecentInvoices(items []models.BillingItem) string {
	recent := items
	if len(recent) > 2 {
		recent = recent[:2]
	}
	if len(recent) == 0 {
		return "No invoices.\n"
	}

	var b strings.Builder
	for _, item := range recent {
		fmt.Fprintf(&b, "%s\n", item.Service)
		fmt.Fprintf(&b, "  Due %s\n", item.DueDate.Format(shortDate))
		fmt.Fprintf(&b, "  ₹%.2f  %s\n", item.Amount, statusLabel(item.Status))
		if item.Status == models.BillingPending {
			fmt.Fprintf(&b, "  Pay: pay %s\n", item.ID)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderInvoiceTable renders every billing item as one table row.
func RenderInvoiceTable(items []models.BillingItem) string {
	if len(items) == 0 {
		return "No invoices.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-14s %-28s %10s  %-8s\n", "Invoice", "Due Date", "Service", "Amount", "Status")
	for _, item := range items {
		fmt.Fprintf(&b, "%-12s %-14s %-28s %10s  %-8s",
			item.InvoiceNumber,
			item.DueDate.Format(shortDate),
			item.Service,
			fmt.Sprintf("₹%.2f", item.Amount),
			statusLabel(item.Status))
		if item.Status == models.BillingPending {
			fmt.Fprintf(&b, "  pay %s", item.ID)
		}
		b.WriteString("\n")
	}
	return b.String()
}
