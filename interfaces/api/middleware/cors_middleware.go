package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"decorlens/pkg/config"
)

// CorsMiddleware answers preflight for every route. Origins default to "*".
func CorsMiddleware(cfg *config.CORSConfig) fiber.Handler {
	origins := strings.TrimSpace(cfg.AllowOrigins)
	if origins == "" {
		origins = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-Admin-Token",
		ExposeHeaders: "X-Request-ID",
		MaxAge:        86400,
	})
}
