package routes

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/interfaces/api/handlers"
)

func SetupProductRoutes(api fiber.Router, h *handlers.Handlers) {
	api.Post("/products/search", h.Product.SearchProducts)
	api.Post("/retailer/query", h.Retailer.BuildQuery)
	api.Get("/proxy-image", h.Proxy.ProxyImage)
}
