package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const scanBatch = 100

// PageCacheRedis keeps rendered pages under a key namespace and lets Redis
// expire them.
type PageCacheRedis struct {
	Client *redis.Client
	prefix string
	logger *zap.Logger
}

func NewPageCacheRedis(client *redis.Client, prefix string, logger *zap.Logger) *PageCacheRedis {
	return &PageCacheRedis{
		Client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (r *PageCacheRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	page, err := r.Client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return page, true, nil
}

func (r *PageCacheRedis) Set(ctx context.Context, key string, page []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.Client.Set(ctx, r.prefix+key, page, ttl).Err()
}

// Clear deletes every key in the namespace; other keys in the same Redis
// database are left alone.
func (r *PageCacheRedis) Clear(ctx context.Context) error {
	var cursor uint64
	deleted := 0
	for {
		keys, next, err := r.Client.Scan(ctx, cursor, r.prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := r.Client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete cache keys: %w", err)
			}
			deleted += len(keys)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	r.logger.Info("page cache cleared", zap.String("prefix", r.prefix), zap.Int("keys", deleted))
	return nil
}
