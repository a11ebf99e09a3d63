package sessions

import (
	"context"
)

// Repository is a small KV store for serialized sessions. The session
// cache owns the key format and the TTL; the repository is plain storage.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
