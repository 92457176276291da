package cache

import (
	"context"
	"errors"
	"time"

	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

type RedisAvailabilityCache struct {
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

var _ shared.AvailabilityCache = (*RedisAvailabilityCache)(nil)

func NewRedisAvailabilityCache(rdb *goredis.Client, ttl time.Duration, prefix string) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
	}
}

func (c *RedisAvailabilityCache) versionKey(shopID uuid.UUID) string {
	return c.prefix + ":shop:" + shopID.String() + ":version"
}

func (c *RedisAvailabilityCache) entryKey(key string) string {
	return c.prefix + ":availability:" + key
}

// Version is 0 for a shop that has never been invalidated.
func (c *RedisAvailabilityCache) Version(ctx context.Context, shopID uuid.UUID) (int64, error) {
	v, err := c.rdb.Get(ctx, c.versionKey(shopID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Wrap(err, "failed to read shop availability version")
	}
	return v, nil
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, c.entryKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to read availability cache")
	}
	return val, true, nil
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, key string, value []byte) error {
	if c.ttl <= 0 {
		return nil
	}
	if err := c.rdb.Set(ctx, c.entryKey(key), value, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to write availability cache")
	}
	return nil
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, shopID uuid.UUID) error {
	if err := c.rdb.Incr(ctx, c.versionKey(shopID)).Err(); err != nil {
		return errs.Wrap(err, "failed to bump shop availability version")
	}
	return nil
}

// NoopAvailabilityCache is used when no redis address is configured.
type NoopAvailabilityCache struct{}

var _ shared.AvailabilityCache = NoopAvailabilityCache{}

func (NoopAvailabilityCache) Version(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (NoopAvailabilityCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopAvailabilityCache) Set(context.Context, string, []byte) error { return nil }

func (NoopAvailabilityCache) Invalidate(context.Context, uuid.UUID) error { return nil }
