package models

import "time"

// QuoteStatus is the stored lifecycle state of a quote. As with invoices,
// "expired" is derived, never persisted.
type QuoteStatus string

const (
	QuoteStatusOpen     QuoteStatus = "open"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
)

// Quote is a priced offer shown in the shared portal view.
type Quote struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"projectId"`
	Number      string      `json:"number"`
	Status      QuoteStatus `json:"status"`
	TotalAmount int64       `json:"totalAmount"`
	Currency    string      `json:"currency"`
	ValidUntil  time.Time   `json:"validUntil"`
}

// IsExpired mirrors Invoice.IsOverdue: an open quote whose validity window
// has passed. Computed at read time.
func (q *Quote) IsExpired(now time.Time) bool {
	return q.Status == QuoteStatusOpen && q.ValidUntil.Before(now)
}
