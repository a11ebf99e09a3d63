// Package models defines the server-side domain types: invoices, quotes,
// share links, recurring templates and generation log entries. Monetary
// amounts are integers in minor currency units (cents).
package models

import "time"

// InvoiceStatus is the stored lifecycle state of an invoice.
// "Overdue" is intentionally not a status: it is derived at read time
// (see Invoice.IsOverdue), so no background process has to flip invoices.
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// InvoiceItem is one billed line. Discount is a flat amount in minor units
// subtracted from quantity*unit_price.
type InvoiceItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Discount    int64  `json:"discount,omitempty"`
}

// Total returns the line total.
func (it InvoiceItem) Total() int64 {
	return it.Quantity*it.UnitPrice - it.Discount
}

// ItemsTotal sums line totals. The invariant TotalAmount == ItemsTotal(Items)
// holds at creation time and is not recomputed on mutation.
func ItemsTotal(items []InvoiceItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Total()
	}
	return sum
}

// Invoice is a financial document owned by the server. PaidAmount and
// PaidDate are set if and only if Status is paid.
type Invoice struct {
	ID           string        `json:"id"`
	ProjectID    string        `json:"projectId"`
	Number       string        `json:"number"`
	Date         time.Time     `json:"date"`
	DueDate      time.Time     `json:"dueDate"`
	Items        []InvoiceItem `json:"items"`
	TotalAmount  int64         `json:"totalAmount"`
	PaidAmount   int64         `json:"paidAmount,omitempty"`
	PaidDate     *time.Time    `json:"paidDate,omitempty"`
	Status       InvoiceStatus `json:"status"`
	Currency     string        `json:"currency"`
	RecurringRef string        `json:"recurringRef,omitempty"`
}

// IsOverdue reports whether the invoice is past due: still issued and the
// due date has passed. Pure function of (status, dueDate, now); never stored.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoiceStatusIssued && i.DueDate.Before(now)
}
