package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"decorlens/domain/services"
)

// statusForError maps a service error to an HTTP status and a message safe to
// show clients. An empty message means the handler's generic one is used.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound):
		return fiber.StatusNotFound, "Board not found"
	case errors.Is(err, services.ErrItemNotFound):
		return fiber.StatusNotFound, "Detected item not found"
	case errors.Is(err, services.ErrInvalidImageURL):
		return fiber.StatusBadRequest, "A valid http(s) image url is required"
	case errors.Is(err, services.ErrImageTooLarge):
		return fiber.StatusRequestEntityTooLarge, "Image is too large"
	case errors.Is(err, services.ErrImageFetch):
		return fiber.StatusBadGateway, "Failed to fetch image"
	case errors.Is(err, services.ErrVisionNotConfigured):
		return fiber.StatusServiceUnavailable, "Vision model is not configured"
	default:
		return fiber.StatusInternalServerError, ""
	}
}

func errorMessage(err error, fallback string) (int, string) {
	status, msg := statusForError(err)
	if msg == "" {
		msg = fallback
	}
	return status, msg
}
