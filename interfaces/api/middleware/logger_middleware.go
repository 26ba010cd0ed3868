package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"decorlens/infrastructure/metrics"
	"decorlens/pkg/logger"
	"decorlens/pkg/utils"
)

// RequestLogger writes one api-category entry per request and records HTTP
// metrics labelled by route pattern
func RequestLogger(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The ErrorHandler has not run yet
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		duration := time.Since(start)
		path := c.Route().Path
		m.RecordHTTPRequest(c.Method(), path, status, duration)

		data := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"route":       path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"ip":          c.IP(),
			"request_id":  utils.RequestID(c),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Warn(logger.CategoryAPI, "request", c.Method()+" "+c.Path(), data)
		case path == "/metrics" || path == "/health":
			logger.Debug(logger.CategoryAPI, "request", c.Method()+" "+c.Path(), data)
		default:
			logger.Info(logger.CategoryAPI, "request", c.Method()+" "+c.Path(), data)
		}

		return err
	}
}
