// Package recurring contains the recurring-invoice engine: template storage
// with a per-template lease and the scheduler that mints invoices from due
// templates.
package recurring

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/billgate/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListDue(ctx context.Context, now time.Time) ([]*DueTemplate, error) {
	query := `
		SELECT t.id, t.project_id, p.name, t.description, t.items, t.currency, t.due_in_days,
		       t.interval_unit, t.interval_count, t.next_run_at, t.last_generated_at, t.active
		FROM recurring_templates t
		JOIN projects p ON p.id = t.project_id
		WHERE t.active AND t.next_run_at <= $1
		ORDER BY t.next_run_at
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*DueTemplate
	for rows.Next() {
		var t DueTemplate
		var items []byte
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.ProjectName, &t.Description, &items, &t.Currency, &t.DueInDays,
			&t.IntervalUnit, &t.IntervalCount, &t.NextRunAt, &t.LastGeneratedAt, &t.Active,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &t.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AcquireLease is the atomic check-then-act the scheduler relies on:
// the WHERE clause re-verifies active, next_run_at and lease state, so two
// overlapping runs can never both claim the same template.
func (r *PostgresRepository) AcquireLease(ctx context.Context, templateID, owner string, now, until time.Time) (bool, error) {
	query := `
		UPDATE recurring_templates
		SET lease_owner = $2, lease_until = $3
		WHERE id = $1 AND active AND next_run_at <= $4
		  AND (lease_until IS NULL OR lease_until < $4)
	`
	res, err := r.db.ExecContext(ctx, query, templateID, owner, until, now)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) Advance(ctx context.Context, templateID, owner string, nextRunAt, lastGeneratedAt time.Time) error {
	query := `
		UPDATE recurring_templates
		SET next_run_at = $3, last_generated_at = $4, lease_owner = NULL, lease_until = NULL
		WHERE id = $1 AND lease_owner = $2
	`
	res, err := r.db.ExecContext(ctx, query, templateID, owner, nextRunAt, lastGeneratedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("lease lost for template %s", templateID)
	}
	return nil
}

func (r *PostgresRepository) ReleaseLease(ctx context.Context, templateID, owner string) error {
	query := `
		UPDATE recurring_templates
		SET lease_owner = NULL, lease_until = NULL
		WHERE id = $1 AND lease_owner = $2
	`
	if _, err := r.db.ExecContext(ctx, query, templateID, owner); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
