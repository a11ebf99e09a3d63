package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/billgate/internal/client/client"
	"github.com/dmitrijs2005/billgate/internal/client/models"
	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/dmitrijs2005/billgate/internal/netx"
)

// SyncState reports whether a mutation reached the server.
type SyncState string

const (
	// SyncStateSynced means the server confirmed the mutation.
	SyncStateSynced SyncState = "synced"

	// SyncStatePendingSync means the request failed at the transport
	// level; the outcome on the server is unknown and the user must
	// retry (the Idempotency-Key makes the retry safe).
	SyncStatePendingSync SyncState = "pending_sync"
)

// MutationResult is the outcome of an invoice mutation. Invoice and
// PartialPayment are only meaningful when State is Synced.
type MutationResult struct {
	State          SyncState
	Invoice        *models.Invoice
	PartialPayment bool
}

// InvoiceService applies invoice transitions through the API. Mutations
// are never retried automatically and a transport failure is surfaced as
// PendingSync, never as success.
type InvoiceService struct {
	client client.Client
}

func NewInvoiceService(apiClient client.Client) *InvoiceService {
	return &InvoiceService{client: apiClient}
}

// Pay marks an invoice paid with the given amount and date.
func (s *InvoiceService) Pay(ctx context.Context, projectID, invoiceID string, amount int64, paidDate time.Time) (*MutationResult, error) {
	date := paidDate.Format(time.RFC3339)
	idemKey := common.IdempotencyKey(invoiceID, string(models.InvoiceStatusPaid))

	inv, partial, err := s.client.UpdateInvoiceStatus(ctx, projectID, invoiceID,
		models.InvoiceStatusPaid, amount, &date, idemKey)
	if err != nil {
		if errors.Is(err, common.ErrNetwork) {
			return &MutationResult{State: SyncStatePendingSync}, nil
		}
		return nil, err
	}

	return &MutationResult{State: SyncStateSynced, Invoice: inv, PartialPayment: partial}, nil
}

// Cancel voids an issued invoice.
func (s *InvoiceService) Cancel(ctx context.Context, projectID, invoiceID string) (*MutationResult, error) {
	idemKey := common.IdempotencyKey(invoiceID, string(models.InvoiceStatusCancelled))

	inv, _, err := s.client.UpdateInvoiceStatus(ctx, projectID, invoiceID,
		models.InvoiceStatusCancelled, 0, nil, idemKey)
	if err != nil {
		if errors.Is(err, common.ErrNetwork) {
			return &MutationResult{State: SyncStatePendingSync}, nil
		}
		return nil, err
	}

	return &MutationResult{State: SyncStateSynced, Invoice: inv}, nil
}

// DocumentURL fetches a presigned download URL for the invoice PDF.
func (s *InvoiceService) DocumentURL(ctx context.Context, projectID, invoiceID string) (string, error) {
	return s.client.GetDocumentURL(ctx, projectID, invoiceID)
}

// downloadFromPresignedURL is a seam for testing Download.
var downloadFromPresignedURL = netx.DownloadFromPresignedURL

// Download pulls the invoice PDF to a local file.
func (s *InvoiceService) Download(ctx context.Context, projectID, invoiceID, path string) error {
	url, err := s.client.GetDocumentURL(ctx, projectID, invoiceID)
	if err != nil {
		return err
	}
	return downloadFromPresignedURL(url, path)
}
