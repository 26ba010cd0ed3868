package routes

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/interfaces/api/handlers"
)

func SetupDesignRoutes(api fiber.Router, h *handlers.Handlers, ai fiber.Handler) {
	api.Post("/rooms/analyze", ai, h.Design.AnalyzeRoom)
	api.Post("/items/carpenter-specs", ai, h.Design.GenerateCarpenterSpec)

	styles := api.Group("/styles", ai)
	styles.Post("/directions", h.Design.GenerateStyleDirections)
	styles.Post("/inspirations", h.Design.GenerateStyleInspirations)
	styles.Post("/deep-design", h.Design.GenerateDeepDesign)

	api.Post("/decor/validate", ai, h.Decor.ValidateDecor)
}
