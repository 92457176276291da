package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shop-reservation/internal/handler/api"
	"shop-reservation/internal/handler/middleware"
	"shop-reservation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservation  *api.ReservationHandler
	Availability *api.AvailabilityHandler
	Catalog      *api.CatalogHandler
	Schedule     *api.ScheduleHandler
	Settings     *api.SettingsHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	optionalAuth := authMiddleware.OptionalAuth()
	requireAuth := authMiddleware.RequireAuth()
	shopAdmin := []gin.HandlerFunc{requireAuth, authMiddleware.RequireShopAdmin()}

	shop := engine.Group("/api/shops/:" + middleware.ShopIDParam)
	{
		services := shop.Group("/services")
		addRoutes(services, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListServices, Mw: []gin.HandlerFunc{optionalAuth}},
			{Method: http.MethodGet, Path: "/:serviceID", Handler: h.Catalog.GetService},
			{Method: http.MethodGet, Path: "/:serviceID/availability", Handler: h.Availability.GetAvailability},
			{Method: http.MethodGet, Path: "/:serviceID/next-slot", Handler: h.Availability.GetNextAvailableSlot},
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateService, Mw: shopAdmin},
			{Method: http.MethodPatch, Path: "/:serviceID", Handler: h.Catalog.UpdateService, Mw: shopAdmin},
			{Method: http.MethodDelete, Path: "/:serviceID", Handler: h.Catalog.DeleteService, Mw: shopAdmin},
		})

		resources := shop.Group("/resources")
		addRoutes(resources, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListResources, Mw: []gin.HandlerFunc{optionalAuth}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Catalog.GetResource},
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.CreateResource, Mw: shopAdmin},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Catalog.UpdateResource, Mw: shopAdmin},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Catalog.DeleteResource, Mw: shopAdmin},
			{Method: http.MethodPut, Path: "/:id/services", Handler: h.Catalog.SetResourceServices, Mw: shopAdmin},
		})

		addRoutes(shop, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Schedule.GetAvailabilitySchedule},
			{Method: http.MethodPut, Path: "/availability", Handler: h.Schedule.SetAvailability, Mw: shopAdmin},
			{Method: http.MethodGet, Path: "/settings", Handler: h.Settings.GetSettings},
			{Method: http.MethodPut, Path: "/settings", Handler: h.Settings.UpdateSettings, Mw: shopAdmin},
		})

		blocks := shop.Group("/blocks")
		blocks.Use(shopAdmin...)
		addRoutes(blocks, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Schedule.ListBlocks},
			{Method: http.MethodPost, Path: "", Handler: h.Schedule.CreateBlock},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Schedule.DeleteBlock},
		})

		reservations := shop.Group("/reservations")
		addRoutes(reservations, []route{
			// guest-capable
			{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateReservation, Mw: []gin.HandlerFunc{optionalAuth}},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Reservation.UpdateReservation, Mw: []gin.HandlerFunc{optionalAuth}},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.CancelReservation, Mw: []gin.HandlerFunc{optionalAuth}},

			{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListReservations, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodGet, Path: "/stats", Handler: h.Reservation.GetReservationStats, Mw: shopAdmin},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Reservation.ConfirmReservation, Mw: shopAdmin},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Reservation.CompleteReservation, Mw: shopAdmin},
			{Method: http.MethodPost, Path: "/:id/no-show", Handler: h.Reservation.MarkNoShow, Mw: shopAdmin},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
