package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"decorlens/pkg/config"
)

// RateLimiter returns a general rate limiting middleware
func RateLimiter(cfg *config.RateLimitConfig) fiber.Handler {
	return newLimiter(cfg.Enabled, cfg.MaxRequests, cfg.WindowSeconds, "Too many requests. Please try again later.")
}

// AIRateLimiter is the stricter limit for routes that call the vision model
func AIRateLimiter(cfg *config.RateLimitConfig) fiber.Handler {
	return newLimiter(cfg.Enabled, cfg.AIMaxRequests, cfg.AIWindowSeconds, "Too many analysis requests. Please try again later.")
}

func newLimiter(enabled bool, max, windowSeconds int, message string) fiber.Handler {
	if !enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Duration(windowSeconds) * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": message,
			})
		},
	})
}
