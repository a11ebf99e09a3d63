package sharelinks

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/dmitrijs2005/billgate/internal/server/auth"
	"github.com/dmitrijs2005/billgate/internal/server/models"
)

const tokenBytes = 16

// Service issues share links and verifies (token, pin) pairs.
//
// A share link's ResourceID is always the owning project id; the resource
// type selects which sections of the project appear in the unlocked
// snapshot (a project link shows everything, an invoice link only the
// invoice section, and so on).
type Service struct {
	repo   Repository
	source SnapshotSource
	now    func() time.Time
}

func NewService(repo Repository, source SnapshotSource) *Service {
	return &Service{repo: repo, source: source, now: time.Now}
}

// Issue creates a share link for a project resource, protected by pin.
// The token is random and unguessable; the PIN is stored only as a bcrypt
// hash. PIN rotation is not supported: issue a new link instead.
func (s *Service) Issue(ctx context.Context, resourceType models.ResourceType, projectID, pin string) (string, error) {
	if !resourceType.Valid() {
		return "", fmt.Errorf("%w: unknown resource type %q", common.ErrorNotFound, resourceType)
	}

	hash, err := auth.HashPin(pin)
	if err != nil {
		return "", err
	}

	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return "", err
	}

	link := &models.ShareLink{
		Token:        token,
		ResourceType: resourceType,
		ResourceID:   projectID,
		PinHash:      hash,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return "", err
	}
	return token, nil
}

// Verify is the single canonical verification operation behind
// POST /shared/{resourceType}/{token}/verify. It resolves the link, checks
// the PIN against the stored hash, and assembles a fresh snapshot.
// Verification has no side effects on server state, so repeated calls with
// the same valid pair return equivalent snapshots.
func (s *Service) Verify(ctx context.Context, resourceType models.ResourceType, token, pin string) (*models.ResourceSnapshot, error) {
	if !resourceType.Valid() {
		return nil, common.ErrorNotFound
	}
	if !common.ValidPinFormat(pin) {
		return nil, common.ErrInvalidPin
	}

	link, err := s.repo.Get(ctx, resourceType, token)
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPin(link.PinHash, pin); err != nil {
		return nil, err
	}

	return s.buildSnapshot(ctx, link)
}

func (s *Service) buildSnapshot(ctx context.Context, link *models.ShareLink) (*models.ResourceSnapshot, error) {
	snap := &models.ResourceSnapshot{
		ResourceType: link.ResourceType,
		ResourceID:   link.ResourceID,
		VerifiedAt:   s.now(),
	}

	project, err := s.source.ProjectInfo(ctx, link.ResourceID)
	if err != nil {
		return nil, err
	}
	snap.Project = project

	if link.ResourceType == models.ResourceTypeProject || link.ResourceType == models.ResourceTypeInvoice {
		if snap.Invoices, err = s.source.Invoices(ctx, link.ResourceID); err != nil {
			return nil, err
		}
	}
	if link.ResourceType == models.ResourceTypeProject || link.ResourceType == models.ResourceTypeQuote {
		if snap.Quotes, err = s.source.Quotes(ctx, link.ResourceID); err != nil {
			return nil, err
		}
	}
	if link.ResourceType == models.ResourceTypeProject || link.ResourceType == models.ResourceTypeHosting {
		if snap.Hosting, err = s.source.Hosting(ctx, link.ResourceID); err != nil {
			return nil, err
		}
	}

	return snap, nil
}
