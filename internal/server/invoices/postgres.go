// Package invoices owns the invoice lifecycle: the PostgreSQL repository,
// the status state machine, and the factory used by the recurring scheduler.
package invoices

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/dmitrijs2005/billgate/internal/dbx"
	"github.com/dmitrijs2005/billgate/internal/server/models"
)

// PostgresRepository implements invoice storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const invoiceColumns = `id, project_id, number, date, due_date, items, total_amount, paid_amount, paid_date, status, currency, recurring_ref`

func scanInvoice(scan func(dest ...any) error) (*models.Invoice, error) {
	var inv models.Invoice
	var items []byte
	var paidAmount sql.NullInt64
	var paidDate sql.NullTime
	var recurringRef sql.NullString

	if err := scan(
		&inv.ID, &inv.ProjectID, &inv.Number, &inv.Date, &inv.DueDate, &items,
		&inv.TotalAmount, &paidAmount, &paidDate, &inv.Status, &inv.Currency, &recurringRef,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if paidAmount.Valid {
		inv.PaidAmount = paidAmount.Int64
	}
	if paidDate.Valid {
		d := paidDate.Time
		inv.PaidDate = &d
	}
	if recurringRef.Valid {
		inv.RecurringRef = recurringRef.String
	}
	return &inv, nil
}

// Create inserts a freshly minted invoice. Items are stored as JSONB.
func (r *PostgresRepository) Create(ctx context.Context, inv *models.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	query := `
		INSERT INTO invoices (id, project_id, number, date, due_date, items, total_amount, status, currency, recurring_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.ExecContext(ctx, query,
		inv.ID, inv.ProjectID, inv.Number, inv.Date, inv.DueDate, items,
		inv.TotalAmount, inv.Status, inv.Currency, nullString(inv.RecurringRef))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, projectID, invoiceID string) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE project_id = $1 AND id = $2`
	row := r.db.QueryRowContext(ctx, query, projectID, invoiceID)
	inv, err := scanInvoice(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE project_id = $1 ORDER BY date DESC, number DESC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkPaid sets the paid state only while the invoice is still issued.
func (r *PostgresRepository) MarkPaid(ctx context.Context, projectID, invoiceID string, amount int64, paidDate time.Time) (int64, error) {
	query := `
		UPDATE invoices SET status = $1, paid_amount = $2, paid_date = $3
		WHERE project_id = $4 AND id = $5 AND status = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		models.InvoiceStatusPaid, amount, paidDate, projectID, invoiceID, models.InvoiceStatusIssued)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

// Cancel voids the invoice only while it is still issued.
func (r *PostgresRepository) Cancel(ctx context.Context, projectID, invoiceID string) (int64, error) {
	query := `
		UPDATE invoices SET status = $1
		WHERE project_id = $2 AND id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query,
		models.InvoiceStatusCancelled, projectID, invoiceID, models.InvoiceStatusIssued)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

// NextNumber advances and returns the per-month invoice sequence in one
// statement, so concurrent creators never mint the same number.
func (r *PostgresRepository) NextNumber(ctx context.Context, month string) (int, error) {
	query := `
		INSERT INTO invoice_numbers (month, last) VALUES ($1, 1)
		ON CONFLICT (month) DO UPDATE SET last = invoice_numbers.last + 1
		RETURNING last
	`
	var last int
	if err := r.db.QueryRowContext(ctx, query, month).Scan(&last); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return last, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
