package utils

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/pkg/logger"
)

// ErrorBody is the failure shape every endpoint returns
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessResponse writes data as-is with status 200
func SuccessResponse(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// CreatedResponse writes data as-is with status 201
func CreatedResponse(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// ErrorResponse writes {"error": message}. The underlying error is logged,
// never sent to the client.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	if err != nil && status >= fiber.StatusInternalServerError {
		logger.Error(logger.CategoryAPI, "request_failed", message, err, map[string]interface{}{
			"path":       c.Path(),
			"method":     c.Method(),
			"status":     status,
			"request_id": RequestID(c),
		})
	}
	return c.Status(status).JSON(ErrorBody{Error: message})
}

// ErrorResponseWithRequestID adds the request id so clients can quote it
func ErrorResponseWithRequestID(c *fiber.Ctx, status int, message string, err error) error {
	if err != nil {
		logger.Error(logger.CategoryAPI, "request_failed", message, err, map[string]interface{}{
			"path":       c.Path(),
			"status":     status,
			"request_id": RequestID(c),
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error":     message,
		"requestId": RequestID(c),
	})
}

// ValidationErrorResponse answers 400 with the validator's message
func ValidationErrorResponse(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{Error: err.Error()})
}

// RequestID returns the id set by the requestid middleware
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
