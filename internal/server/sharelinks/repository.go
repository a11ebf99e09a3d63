package sharelinks

import (
	"context"

	"github.com/dmitrijs2005/billgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, link *models.ShareLink) error
	Get(ctx context.Context, resourceType models.ResourceType, token string) (*models.ShareLink, error)
}

// SnapshotSource provides the read-only project data a verified snapshot is
// assembled from. Generic project/client CRUD lives outside this system;
// this interface is the only window into it.
type SnapshotSource interface {
	ProjectInfo(ctx context.Context, projectID string) (*models.ProjectInfo, error)
	Invoices(ctx context.Context, projectID string) ([]*models.Invoice, error)
	Quotes(ctx context.Context, projectID string) ([]*models.Quote, error)
	Hosting(ctx context.Context, projectID string) ([]*models.HostingAccount, error)
}
