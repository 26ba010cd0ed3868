package routes

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/infrastructure/metrics"
	"decorlens/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, healthHandler *handlers.HealthHandler, m *metrics.Metrics) {
	app.Get("/health", healthHandler.Health)
	app.Get("/health/detailed", healthHandler.DetailedHealth)

	if m != nil {
		app.Get("/metrics", m.Handler())
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Decorlens API",
			"version": "1.0.0",
			"docs":    "/api/v1",
			"health":  "/health",
		})
	})
}
