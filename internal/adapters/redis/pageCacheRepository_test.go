package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*PageCacheRedis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPageCacheRedis(client, "yatube:cache:", zap.NewNop()), mr
}

func TestPageCacheRedis_GetSetExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "index_page")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "index_page", []byte("<html>"), 20*time.Second))
	assert.True(t, mr.Exists("yatube:cache:index_page"))

	page, ok, err := cache.Get(ctx, "index_page")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<html>", string(page))

	mr.FastForward(21 * time.Second)
	_, ok, err = cache.Get(ctx, "index_page")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageCacheRedis_ClearKeepsForeignKeys(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("session:other-app", "keep me"))
	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctx, key, []byte(key), time.Minute))
	}

	require.NoError(t, cache.Clear(ctx))

	for _, key := range []string{"a", "b", "c"} {
		_, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.True(t, mr.Exists("session:other-app"))
}
