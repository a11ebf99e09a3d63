package auditlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/billgate/internal/dbx"
	"github.com/dmitrijs2005/billgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, entry *models.GenerationLogEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}

	query := `
		INSERT INTO generation_log (id, ts, type, generated_count, success, error, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.Timestamp, entry.Type, entry.GeneratedCount, entry.Success, entry.Error, details)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Select(ctx context.Context, offset, limit int, typeFilter models.RunMode) ([]*models.GenerationLogEntry, error) {
	query := `
		SELECT id, ts, type, generated_count, success, error, details
		FROM generation_log
		WHERE ($1 = '' OR type = $1)
		ORDER BY ts DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, string(typeFilter), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.GenerationLogEntry
	for rows.Next() {
		var e models.GenerationLogEntry
		var details []byte
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Type, &e.GeneratedCount, &e.Success, &e.Error, &details); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(details, &e.Details); err != nil {
			return nil, fmt.Errorf("decode details: %w", err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, typeFilter models.RunMode) (int, error) {
	query := `SELECT COUNT(*) FROM generation_log WHERE ($1 = '' OR type = $1)`
	var n int
	if err := r.db.QueryRowContext(ctx, query, string(typeFilter)).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
