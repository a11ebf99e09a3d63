// Package sharelinks implements the shared-access side of the portal: share
// link issuance and the canonical token+PIN verification that produces a
// resource snapshot.
package sharelinks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/dmitrijs2005/billgate/internal/dbx"
	"github.com/dmitrijs2005/billgate/internal/server/invoices"
	"github.com/dmitrijs2005/billgate/internal/server/models"
)

// PostgresRepository stores share links.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, link *models.ShareLink) error {
	query := `
		INSERT INTO share_links (token, resource_type, resource_id, pin_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		link.Token, link.ResourceType, link.ResourceID, link.PinHash, link.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, resourceType models.ResourceType, token string) (*models.ShareLink, error) {
	query := `
		SELECT token, resource_type, resource_id, pin_hash, created_at
		FROM share_links WHERE resource_type = $1 AND token = $2
	`
	var link models.ShareLink
	err := r.db.QueryRowContext(ctx, query, resourceType, token).Scan(
		&link.Token, &link.ResourceType, &link.ResourceID, &link.PinHash, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &link, nil
}

// PostgresSnapshotSource reads the denormalized project data included in
// snapshots. Invoices come through the invoices repository; projects,
// quotes and hosting accounts are plain read-only queries.
type PostgresSnapshotSource struct {
	db       dbx.DBTX
	invoices invoices.Repository
}

func NewPostgresSnapshotSource(db dbx.DBTX, inv invoices.Repository) *PostgresSnapshotSource {
	return &PostgresSnapshotSource{db: db, invoices: inv}
}

func (s *PostgresSnapshotSource) ProjectInfo(ctx context.Context, projectID string) (*models.ProjectInfo, error) {
	query := `SELECT id, name, client_name FROM projects WHERE id = $1`
	var p models.ProjectInfo
	err := s.db.QueryRowContext(ctx, query, projectID).Scan(&p.ID, &p.Name, &p.ClientName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (s *PostgresSnapshotSource) Invoices(ctx context.Context, projectID string) ([]*models.Invoice, error) {
	return s.invoices.ListByProject(ctx, projectID)
}

func (s *PostgresSnapshotSource) Quotes(ctx context.Context, projectID string) ([]*models.Quote, error) {
	query := `
		SELECT id, project_id, number, status, total_amount, currency, valid_until
		FROM quotes WHERE project_id = $1 ORDER BY valid_until DESC
	`
	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Quote
	for rows.Next() {
		var q models.Quote
		if err := rows.Scan(&q.ID, &q.ProjectID, &q.Number, &q.Status, &q.TotalAmount, &q.Currency, &q.ValidUntil); err != nil {
			return nil, err
		}
		result = append(result, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostgresSnapshotSource) Hosting(ctx context.Context, projectID string) ([]*models.HostingAccount, error) {
	query := `
		SELECT id, project_id, domain, plan, active, expires_at
		FROM hosting_accounts WHERE project_id = $1 ORDER BY domain
	`
	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.HostingAccount
	for rows.Next() {
		var h models.HostingAccount
		if err := rows.Scan(&h.ID, &h.ProjectID, &h.Domain, &h.Plan, &h.Active, &h.ExpiresAt); err != nil {
			return nil, err
		}
		result = append(result, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
