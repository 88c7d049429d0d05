package models

import "time"

// Billing item statuses. These are wire values: conditional logic compares
// against them verbatim; any capitalization happens at render time only.
const (
	BillingPending = "pending"
	BillingPaid    = "paid"
)

// BillingItem is one invoice line owned by the backend.
type BillingItem struct {
	ID            string    `bson:"_id" json:"_id"`
	InvoiceNumber string    `bson:"invoiceNumber" json:"invoiceNumber"`
	DueDate       time.Time `bson:"dueDate" json:"dueDate"`
	Service       string    `bson:"service" json:"service"`
	Amount        float64   `bson:"amount" json:"amount"`
	Status        string    `bson:"status" json:"status"` // "pending" | "paid"
}
