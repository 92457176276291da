package components

import (
	"shop-reservation/internal/handler"
	"shop-reservation/internal/handler/api"
	"shop-reservation/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewCatalogHandler,
		api.NewScheduleHandler,
		api.NewSettingsHandler,
		middleware.NewAuthMiddleware,
		func(
			reservation *api.ReservationHandler,
			availability *api.AvailabilityHandler,
			catalog *api.CatalogHandler,
			schedule *api.ScheduleHandler,
			settings *api.SettingsHandler,
		) handler.Handlers {
			return handler.Handlers{
				Reservation:  reservation,
				Availability: availability,
				Catalog:      catalog,
				Schedule:     schedule,
				Settings:     settings,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
