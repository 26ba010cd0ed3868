package routes

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/infrastructure/metrics"
	"decorlens/interfaces/api/handlers"
	"decorlens/interfaces/api/middleware"
	"decorlens/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, ws *WebSocketDeps, m *metrics.Metrics, cfg *config.Config) {
	SetupHealthRoutes(app, h.Health, m)

	api := app.Group("/api/v1", middleware.RateLimiter(&cfg.RateLimit))
	ai := middleware.AIRateLimiter(&cfg.RateLimit)

	SetupBoardRoutes(api, h, ai)
	SetupDesignRoutes(api, h, ai)
	SetupProductRoutes(api, h)
	SetupAdminRoutes(api, h, cfg.Admin.Token)

	if ws != nil {
		SetupWebSocketRoutes(app, ws)
	}
}
