package recurring

import (
	"context"
	"time"

	"github.com/dmitrijs2005/billgate/internal/server/models"
)

// DueTemplate is a template selected for generation, joined with the
// project name for the audit detail.
type DueTemplate struct {
	models.RecurringTemplate
	ProjectName string
}

type Repository interface {
	// ListDue returns active templates with nextRunAt <= now.
	ListDue(ctx context.Context, now time.Time) ([]*DueTemplate, error)

	// AcquireLease atomically claims a template for one run. The claim
	// re-checks active and nextRunAt so a template advanced by a
	// concurrent run can no longer be claimed. Returns false when the
	// lease is held elsewhere or the template is no longer due.
	AcquireLease(ctx context.Context, templateID, owner string, now, until time.Time) (bool, error)

	// Advance moves nextRunAt forward, records lastGeneratedAt, and
	// releases the lease, all guarded by lease ownership.
	Advance(ctx context.Context, templateID, owner string, nextRunAt, lastGeneratedAt time.Time) error

	// ReleaseLease frees a claim after a failed attempt.
	ReleaseLease(ctx context.Context, templateID, owner string) error
}
