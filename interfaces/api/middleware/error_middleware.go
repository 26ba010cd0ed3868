package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"decorlens/pkg/logger"
	"decorlens/pkg/utils"
)

// ErrorHandler renders errors that escape handlers as {"error": message}
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An error occurred"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error(logger.CategoryAPI, "error_handler", "Request error occurred", err, map[string]interface{}{
				"status_code": code,
				"path":        c.Path(),
				"method":      c.Method(),
				"request_id":  utils.RequestID(c),
			})
		}

		return c.Status(code).JSON(utils.ErrorBody{Error: message})
	}
}
