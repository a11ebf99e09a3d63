// Package sessioncache persists unlocked sessions in the local KV store
// with a fixed TTL. A session is written only by a successful PIN
// verification and removed by logout or expiry; reads never extend the
// TTL, so every session dies at most TTL after its last verification.
package sessioncache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/billgate/internal/client/models"
	"github.com/dmitrijs2005/billgate/internal/client/repositories/sessions"
)

// SessionTTL is the fixed lifetime of an unlocked session.
const SessionTTL = 24 * time.Hour

func sessionKey(resourceType models.ResourceType, token string) string {
	return fmt.Sprintf("%s_session_%s", resourceType, token)
}

type Cache struct {
	repo sessions.Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewCache(repo sessions.Repository) *Cache {
	return &Cache{repo: repo, ttl: SessionTTL, now: time.Now}
}

// Save stores a freshly verified session, restarting its TTL clock. The
// language and the verifying PIN are kept alongside the snapshot.
func (c *Cache) Save(ctx context.Context, resourceType models.ResourceType, token string, snapshot *models.ResourceSnapshot, language, pin string) (*models.Session, error) {
	session := &models.Session{
		ResourceType: resourceType,
		Token:        token,
		Snapshot:     snapshot,
		Language:     language,
		PIN:          pin,
		CreatedAt:    c.now(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	if err := c.repo.Set(ctx, sessionKey(resourceType, token), data); err != nil {
		return nil, err
	}
	return session, nil
}

// Load returns the cached session, or nil when there is none. An expired
// session is purged and reported as a miss. Loading does not touch
// CreatedAt: only re-verification restarts the TTL.
func (c *Cache) Load(ctx context.Context, resourceType models.ResourceType, token string) (*models.Session, error) {
	key := sessionKey(resourceType, token)

	data, err := c.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt record is as good as no record.
		_ = c.repo.Delete(ctx, key)
		return nil, nil
	}

	if c.now().Sub(session.CreatedAt) >= c.ttl {
		if err := c.repo.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &session, nil
}

// Invalidate removes one session (logout).
func (c *Cache) Invalidate(ctx context.Context, resourceType models.ResourceType, token string) error {
	return c.repo.Delete(ctx, sessionKey(resourceType, token))
}
