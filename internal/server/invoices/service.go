package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/dmitrijs2005/billgate/internal/server/models"
	"github.com/google/uuid"
)

// MarkPaidResult carries the updated invoice plus a warning flag.
// PartialPayment is advisory: paying less than the total is permitted,
// but callers should surface it to the user.
type MarkPaidResult struct {
	Invoice        *models.Invoice
	PartialPayment bool
}

// Service enforces the invoice state machine:
//
//	issued -> paid      (terminal)
//	issued -> cancelled (terminal)
//
// and mints new invoices via Create.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// MarkPaid transitions an issued invoice to paid. Both amount and paidDate
// are required. If idemKey matches a transition that has already been
// applied with the same paid fields, the stored invoice is echoed back
// instead of failing, so a blind retry after an ambiguous response cannot
// double-apply a payment.
func (s *Service) MarkPaid(ctx context.Context, projectID, invoiceID string, amount int64, paidDate time.Time, idemKey string) (*MarkPaidResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: paid amount must be positive", common.ErrInvalidAmount)
	}
	if paidDate.IsZero() {
		return nil, fmt.Errorf("%w: paid date is required", common.ErrInvalidAmount)
	}

	inv, err := s.repo.GetByID(ctx, projectID, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.Status == models.InvoiceStatusPaid {
		// Idempotent replay of an already-applied transition.
		if idemKey == common.IdempotencyKey(invoiceID, string(models.InvoiceStatusPaid)) &&
			inv.PaidAmount == amount {
			return &MarkPaidResult{Invoice: inv, PartialPayment: inv.PaidAmount < inv.TotalAmount}, nil
		}
		return nil, fmt.Errorf("%w: invoice %s is already paid", common.ErrInvalidTransition, inv.Number)
	}
	if inv.Status != models.InvoiceStatusIssued {
		return nil, fmt.Errorf("%w: invoice %s is %s", common.ErrInvalidTransition, inv.Number, inv.Status)
	}

	n, err := s.repo.MarkPaid(ctx, projectID, invoiceID, amount, paidDate)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Lost a race with another transition.
		return nil, fmt.Errorf("%w: invoice %s changed state concurrently", common.ErrInvalidTransition, inv.Number)
	}

	inv.Status = models.InvoiceStatusPaid
	inv.PaidAmount = amount
	inv.PaidDate = &paidDate

	return &MarkPaidResult{Invoice: inv, PartialPayment: amount < inv.TotalAmount}, nil
}

// Cancel voids an issued invoice. Cancelling a paid invoice is refused so
// revenue records are never silently discarded.
func (s *Service) Cancel(ctx context.Context, projectID, invoiceID string, idemKey string) (*models.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, projectID, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.Status == models.InvoiceStatusCancelled {
		if idemKey == common.IdempotencyKey(invoiceID, string(models.InvoiceStatusCancelled)) {
			return inv, nil
		}
		return nil, fmt.Errorf("%w: invoice %s is already cancelled", common.ErrInvalidTransition, inv.Number)
	}
	if inv.Status != models.InvoiceStatusIssued {
		return nil, fmt.Errorf("%w: invoice %s is %s", common.ErrInvalidTransition, inv.Number, inv.Status)
	}

	n, err := s.repo.Cancel(ctx, projectID, invoiceID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: invoice %s changed state concurrently", common.ErrInvalidTransition, inv.Number)
	}

	inv.Status = models.InvoiceStatusCancelled
	return inv, nil
}

// Create is the factory used by the scheduler and admin flows. It computes
// the total from items, assigns the next INV-YYYYMM-NNNN number, and issues
// the invoice with dueDate = now + dueInDays.
func (s *Service) Create(ctx context.Context, projectID string, items []models.InvoiceItem, dueInDays int, currency string, recurringRef string) (*models.Invoice, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one item", common.ErrInvalidAmount)
	}
	total := models.ItemsTotal(items)
	if total < 0 {
		return nil, fmt.Errorf("%w: negative invoice total", common.ErrInvalidAmount)
	}

	now := s.now()
	month := now.Format("200601")
	seq, err := s.repo.NextNumber(ctx, month)
	if err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		Number:       fmt.Sprintf("INV-%s-%04d", month, seq),
		Date:         now,
		DueDate:      now.AddDate(0, 0, dueInDays),
		Items:        items,
		TotalAmount:  total,
		Status:       models.InvoiceStatusIssued,
		Currency:     currency,
		RecurringRef: recurringRef,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Get returns one invoice.
func (s *Service) Get(ctx context.Context, projectID, invoiceID string) (*models.Invoice, error) {
	return s.repo.GetByID(ctx, projectID, invoiceID)
}
