package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"decorlens/pkg/logger"
)

// AdminToken guards maintenance routes. The token is read from the
// X-Admin-Token header or the token query parameter. With no token
// configured every request is rejected.
func AdminToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		given := c.Get("X-Admin-Token")
		if given == "" {
			given = c.Query("token")
		}

		if token == "" || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			logger.Warn(logger.CategoryAPI, "admin_denied", "Invalid admin token", map[string]interface{}{
				"path": c.Path(),
				"ip":   c.IP(),
			})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid admin token",
			})
		}
		return c.Next()
	}
}
