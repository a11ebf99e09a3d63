package invoices

import (
	"context"
	"time"

	"github.com/dmitrijs2005/billgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, inv *models.Invoice) error
	GetByID(ctx context.Context, projectID, invoiceID string) (*models.Invoice, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.Invoice, error)

	// MarkPaid and Cancel apply the transition guarded by the current status
	// in the WHERE clause and report the number of rows affected, so a lost
	// race surfaces as 0 instead of silently overwriting a terminal state.
	MarkPaid(ctx context.Context, projectID, invoiceID string, amount int64, paidDate time.Time) (int64, error)
	Cancel(ctx context.Context, projectID, invoiceID string) (int64, error)

	// NextNumber returns the next invoice sequence number for a billing
	// month ("YYYYMM"), starting at 1.
	NextNumber(ctx context.Context, month string) (int, error)
}
