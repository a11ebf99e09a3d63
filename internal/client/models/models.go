// Package models mirrors the wire types of the portal API on the client
// side, plus the locally persisted session. JSON tags match the server
// contract exactly.
package models

import "time"

type ResourceType string

const (
	ResourceTypeProject ResourceType = "project"
	ResourceTypeInvoice ResourceType = "invoice"
	ResourceTypeQuote   ResourceType = "quote"
	ResourceTypeHosting ResourceType = "hosting"
)

type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type InvoiceItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Discount    int64  `json:"discount,omitempty"`
}

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

// IsOverdue mirrors the server-side derivation so cached snapshots render
// the same way the server would.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoiceStatusIssued && i.DueDate.Before(now)
}

type QuoteStatus string

const (
	QuoteStatusOpen     QuoteStatus = "open"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
)

type Quote struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"projectId"`
	Number      string      `json:"number"`
	Status      QuoteStatus `json:"status"`
	TotalAmount int64       `json:"totalAmount"`
	Currency    string      `json:"currency"`
	ValidUntil  time.Time   `json:"validUntil"`
}

// IsExpired mirrors the server-side derivation: an open quote whose
// validity window has passed. Accepted and declined quotes never expire.
func (q *Quote) IsExpired(now time.Time) bool {
	return q.Status == QuoteStatusOpen && q.ValidUntil.Before(now)
}

type ProjectInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"clientName"`
}

type HostingAccount struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Domain    string    `json:"domain"`
	Plan      string    `json:"plan"`
	Active    bool      `json:"active"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ResourceSnapshot struct {
	ResourceType ResourceType      `json:"resourceType"`
	ResourceID   string            `json:"resourceId"`
	Project      *ProjectInfo      `json:"project,omitempty"`
	Invoices     []*Invoice        `json:"invoices,omitempty"`
	Quotes       []*Quote          `json:"quotes,omitempty"`
	Hosting      []*HostingAccount `json:"hosting,omitempty"`
	VerifiedAt   time.Time         `json:"verifiedAt"`
}

// Session is the locally cached unlocked view plus its metadata: the UI
// language and the last PIN that verified. CreatedAt starts the TTL clock;
// it is reset only by a fresh PIN verification, never by reads.
type Session struct {
	ResourceType ResourceType      `json:"resourceType"`
	Token        string            `json:"token"`
	Snapshot     *ResourceSnapshot `json:"snapshot"`
	Language     string            `json:"language"`
	PIN          string            `json:"pin"`
	CreatedAt    time.Time         `json:"createdAt"`
}
