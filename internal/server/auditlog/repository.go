package auditlog

import (
	"context"

	"github.com/dmitrijs2005/billgate/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, entry *models.GenerationLogEntry) error

	// Select returns entries sorted by timestamp descending. An empty
	// typeFilter means all run modes.
	Select(ctx context.Context, offset, limit int, typeFilter models.RunMode) ([]*models.GenerationLogEntry, error)
	Count(ctx context.Context, typeFilter models.RunMode) (int, error)
}
