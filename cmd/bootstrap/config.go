package bootstrap

import (
	"time"

	"shop-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewLocation,
	),
)

// NewLocation is the single timezone every shop's wall-clock rules are read in.
func NewLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Reservation.Location()
}
