// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/billgate/internal/dbx"
	"github.com/dmitrijs2005/billgate/internal/server/auditlog"
	"github.com/dmitrijs2005/billgate/internal/server/invoices"
	"github.com/dmitrijs2005/billgate/internal/server/migrations"
	"github.com/dmitrijs2005/billgate/internal/server/recurring"
	"github.com/dmitrijs2005/billgate/internal/server/sharelinks"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Invoices returns an invoices.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Invoices(db dbx.DBTX) invoices.Repository {
	return invoices.NewPostgresRepository(db)
}

// ShareLinks returns a sharelinks.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) ShareLinks(db dbx.DBTX) sharelinks.Repository {
	return sharelinks.NewPostgresRepository(db)
}

// Snapshots returns a snapshot source reading project, quote and hosting
// data, delegating invoice reads to the invoices repository.
func (m *PostgresRepositoryManager) Snapshots(db dbx.DBTX) sharelinks.SnapshotSource {
	return sharelinks.NewPostgresSnapshotSource(db, invoices.NewPostgresRepository(db))
}

// RecurringTemplates returns a recurring.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RecurringTemplates(db dbx.DBTX) recurring.Repository {
	return recurring.NewPostgresRepository(db)
}

// GenerationLog returns an auditlog.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) GenerationLog(db dbx.DBTX) auditlog.Repository {
	return auditlog.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
