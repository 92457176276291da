package bootstrap

import (
	"context"
	"log/slog"

	"shop-reservation/internal/infra/cache"
	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewAvailabilityCache,
	),
)

// NewAvailabilityCache returns a nil cache when REDIS_ADDR is empty; every
// caller treats nil as "always recompute".
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.AvailabilityCache, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("availability cache disabled")
		return nil, nil
	}

	rdb, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	logger.Info("availability cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	return cache.NewRedisAvailabilityCache(rdb, cfg.Redis.TTL, cfg.Redis.Prefix), nil
}
