// Package services contains the client-side application services: the
// access gate over the session cache and the invoice mutation service
// with explicit sync state.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/billgate/internal/client/client"
	"github.com/dmitrijs2005/billgate/internal/client/models"
	"github.com/dmitrijs2005/billgate/internal/client/sessioncache"
	"github.com/dmitrijs2005/billgate/internal/common"
)

// AccessGate controls access to shared views. Unlock is cache-first: a
// live cached session opens the view with no server round trip; a miss
// (or expiry) means the caller must run PIN verification.
type AccessGate struct {
	client client.Client
	cache  *sessioncache.Cache
}

func NewAccessGate(apiClient client.Client, cache *sessioncache.Cache) *AccessGate {
	return &AccessGate{client: apiClient, cache: cache}
}

// Unlock opens the shared view from the cache. When no live session
// exists it returns ErrSessionExpired and the caller re-verifies.
func (g *AccessGate) Unlock(ctx context.Context, resourceType models.ResourceType, token string) (*models.Session, error) {
	session, err := g.cache.Load(ctx, resourceType, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, common.ErrSessionExpired
	}
	return session, nil
}

// VerifyPIN runs the canonical server verification and writes the fresh
// session through to the cache, restarting its TTL. The session records the
// UI language and the PIN that verified.
func (g *AccessGate) VerifyPIN(ctx context.Context, resourceType models.ResourceType, token, pin, language string) (*models.Session, error) {
	if !common.ValidPinFormat(pin) {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidPin, common.ErrInvalidPinFormat)
	}

	snapshot, err := g.client.Verify(ctx, resourceType, token, pin)
	if err != nil {
		return nil, err
	}

	return g.cache.Save(ctx, resourceType, token, snapshot, language, pin)
}

// Logout drops the cached session. The share link itself stays valid.
func (g *AccessGate) Logout(ctx context.Context, resourceType models.ResourceType, token string) error {
	return g.cache.Invalidate(ctx, resourceType, token)
}
