package pagecache

import (
	"context"
	"time"
)

// Cache stores rendered pages for a bounded time. Writes elsewhere in the app
// never invalidate it; entries only expire or get cleared explicitly.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, page []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}
