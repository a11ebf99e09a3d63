package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/billgate/internal/dbx"
	"github.com/dmitrijs2005/billgate/internal/server/auditlog"
	"github.com/dmitrijs2005/billgate/internal/server/invoices"
	"github.com/dmitrijs2005/billgate/internal/server/recurring"
	"github.com/dmitrijs2005/billgate/internal/server/sharelinks"
)

// RepositoryManager vends storage-backed repositories bound to a DBTX
// (*sql.DB or *sql.Tx) and exposes the schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Invoices(db dbx.DBTX) invoices.Repository
	ShareLinks(db dbx.DBTX) sharelinks.Repository
	Snapshots(db dbx.DBTX) sharelinks.SnapshotSource
	RecurringTemplates(db dbx.DBTX) recurring.Repository
	GenerationLog(db dbx.DBTX) auditlog.Repository
}
