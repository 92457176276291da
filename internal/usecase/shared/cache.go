package shared

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// AvailabilityCache stores computed availability per shop. Every entry key
// embeds the shop version, so Invalidate only has to bump the version.
type AvailabilityCache interface {
	Version(ctx context.Context, shopID uuid.UUID) (int64, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Invalidate(ctx context.Context, shopID uuid.UUID) error
}

// InvalidateAvailability is called after a committed write. Failures are
// logged and swallowed; the cache TTL bounds staleness.
func InvalidateAvailability(ctx context.Context, cache AvailabilityCache, shopID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, shopID); err != nil {
		slog.Warn("failed to invalidate availability cache",
			"shop_id", shopID.String(),
			"error", err.Error())
	}
}
