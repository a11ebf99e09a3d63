package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/dmitrijs2005/billgate/internal/logging"
	"github.com/dmitrijs2005/billgate/internal/server/models"
	"github.com/google/uuid"
)

const defaultLeaseDuration = 2 * time.Minute

// InvoiceCreator is the slice of the invoice service the scheduler needs.
type InvoiceCreator interface {
	Create(ctx context.Context, projectID string, items []models.InvoiceItem, dueInDays int, currency string, recurringRef string) (*models.Invoice, error)
}

// LogStore persists one entry per run.
type LogStore interface {
	Append(ctx context.Context, entry *models.GenerationLogEntry) error
}

// Scheduler mints invoices from due recurring templates. Runs may overlap
// (timer and manual trigger); the per-template lease in the repository
// guarantees each template is advanced by at most one of them.
type Scheduler struct {
	templates     Repository
	invoices      InvoiceCreator
	log           LogStore
	logger        logging.Logger
	leaseDuration time.Duration
	now           func() time.Time
}

func NewScheduler(templates Repository, invoices InvoiceCreator, log LogStore, logger logging.Logger) *Scheduler {
	return &Scheduler{
		templates:     templates,
		invoices:      invoices,
		log:           log,
		logger:        logger.With("module", "recurring_scheduler"),
		leaseDuration: defaultLeaseDuration,
		now:           time.Now,
	}
}

// Run executes one generation pass and returns its audit entry. Templates
// fail independently: a bad template is recorded as a failed detail and
// never blocks the rest of the batch. A template whose nextRunAt was
// already advanced past now by an earlier run is not selected, so an
// immediate re-run generates zero invoices and reports success.
func (s *Scheduler) Run(ctx context.Context, mode models.RunMode) (*models.GenerationLogEntry, error) {
	now := s.now()

	due, err := s.templates.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list due templates: %w", err)
	}

	entry := &models.GenerationLogEntry{
		ID:        uuid.New().String(),
		Timestamp: now,
		Type:      mode,
		Success:   true,
		Details:   make([]models.GenerationDetail, 0, len(due)),
	}

	failed := 0
	for _, tpl := range due {
		detail := s.generate(ctx, tpl, now)
		if detail.Error != "" {
			failed++
			entry.Success = false
		} else {
			entry.GeneratedCount++
		}
		entry.Details = append(entry.Details, detail)
	}

	if failed > 0 {
		entry.Error = fmt.Sprintf("%d of %d templates failed", failed, len(due))
	}

	if err := s.log.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append generation log: %w", err)
	}

	s.logger.Info(ctx, "generation run finished",
		"mode", mode, "due", len(due), "generated", entry.GeneratedCount, "failed", failed)

	return entry, nil
}

// generate attempts one template under its lease and reports the outcome.
func (s *Scheduler) generate(ctx context.Context, tpl *DueTemplate, now time.Time) models.GenerationDetail {
	detail := models.GenerationDetail{TemplateID: tpl.ID, ProjectName: tpl.ProjectName}

	owner, err := common.MakeRandHexString(8)
	if err != nil {
		detail.Error = err.Error()
		return detail
	}

	ok, err := s.templates.AcquireLease(ctx, tpl.ID, owner, now, now.Add(s.leaseDuration))
	if err != nil {
		detail.Error = err.Error()
		return detail
	}
	if !ok {
		// Claimed by an overlapping run, or no longer due.
		detail.Error = common.ErrTemplateLeaseHeld.Error()
		return detail
	}

	inv, err := s.invoices.Create(ctx, tpl.ProjectID, tpl.Items, tpl.DueInDays, tpl.Currency, tpl.ID)
	if err != nil {
		detail.Error = err.Error()
		if relErr := s.templates.ReleaseLease(ctx, tpl.ID, owner); relErr != nil {
			s.logger.Warn(ctx, "lease release failed", "template", tpl.ID, "error", relErr)
		}
		return detail
	}

	if err := s.templates.Advance(ctx, tpl.ID, owner, tpl.NextAfter(tpl.NextRunAt), now); err != nil {
		// The invoice exists but the template did not move; the lease will
		// expire and the next run will try again. Report as a failure so
		// an operator sees it.
		detail.Error = err.Error()
		return detail
	}

	detail.InvoiceID = inv.ID
	detail.NewInvoiceNumber = inv.Number
	detail.Amount = inv.TotalAmount
	return detail
}
