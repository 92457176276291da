//go:build unit

package cache_test

import (
	"context"
	"testing"
	"time"

	"shop-reservation/internal/infra/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) (*cache.RedisAvailabilityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewRedisAvailabilityCache(rdb, ttl, "test"), mr
}

func TestRedisAvailabilityCache(t *testing.T) {
	ctx := context.Background()
	shopID := uuid.New()

	t.Run("未無効化のショップはバージョン0", func(t *testing.T) {
		c, _ := newCache(t, time.Minute)

		v, err := c.Version(ctx, shopID)

		require.NoError(t, err)
		assert.Equal(t, int64(0), v)
	})

	t.Run("Invalidateでバージョンが単調増加する", func(t *testing.T) {
		c, _ := newCache(t, time.Minute)

		require.NoError(t, c.Invalidate(ctx, shopID))
		require.NoError(t, c.Invalidate(ctx, shopID))
		v, err := c.Version(ctx, shopID)

		require.NoError(t, err)
		assert.Equal(t, int64(2), v)
	})

	t.Run("他ショップのバージョンに影響しない", func(t *testing.T) {
		c, _ := newCache(t, time.Minute)
		other := uuid.New()

		require.NoError(t, c.Invalidate(ctx, shopID))
		v, err := c.Version(ctx, other)

		require.NoError(t, err)
		assert.Equal(t, int64(0), v)
	})

	t.Run("SetしたエントリをGetできる", func(t *testing.T) {
		c, _ := newCache(t, time.Minute)

		require.NoError(t, c.Set(ctx, "k1", []byte(`[{"date":"2026-10-19"}]`)))
		got, ok, err := c.Get(ctx, "k1")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `[{"date":"2026-10-19"}]`, string(got))
	})

	t.Run("未登録キーはミス", func(t *testing.T) {
		c, _ := newCache(t, time.Minute)

		got, ok, err := c.Get(ctx, "missing")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("TTL経過後はミス", func(t *testing.T) {
		c, mr := newCache(t, time.Minute)

		require.NoError(t, c.Set(ctx, "k1", []byte("x")))
		mr.FastForward(2 * time.Minute)
		_, ok, err := c.Get(ctx, "k1")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("TTL0では書き込まない", func(t *testing.T) {
		c, _ := newCache(t, 0)

		require.NoError(t, c.Set(ctx, "k1", []byte("x")))
		_, ok, err := c.Get(ctx, "k1")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Redis停止時はエラーを返す", func(t *testing.T) {
		c, mr := newCache(t, time.Minute)
		mr.Close()

		_, err := c.Version(ctx, shopID)

		assert.Error(t, err)
	})
}

func TestNoopAvailabilityCache(t *testing.T) {
	ctx := context.Background()
	var c cache.NoopAvailabilityCache

	require.NoError(t, c.Set(ctx, "k", []byte("x")))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.Invalidate(ctx, uuid.New()))
}
