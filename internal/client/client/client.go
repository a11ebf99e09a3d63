package client

import (
	"context"

	"github.com/dmitrijs2005/billgate/internal/client/models"
)

// Client is the portal API surface the client services depend on.
//
// Verify may retry once on a network failure (it is side-effect free on
// the server). UpdateInvoiceStatus never retries on its own: an ambiguous
// outcome must surface to the caller as pending sync, and deliberate
// retries go through the Idempotency-Key.
type Client interface {
	Verify(ctx context.Context, resourceType models.ResourceType, token, pin string) (*models.ResourceSnapshot, error)
	UpdateInvoiceStatus(ctx context.Context, projectID, invoiceID string, status models.InvoiceStatus, paidAmount int64, paidDate *string, idemKey string) (*models.Invoice, bool, error)
	GetDocumentURL(ctx context.Context, projectID, invoiceID string) (string, error)
	Close() error
}
