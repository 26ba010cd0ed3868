package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"decorlens/pkg/utils"
)

var errInvalidBody = errors.New("Invalid request body")

// bind parses the JSON body into dst and validates it. The returned error
// text is meant for a 400 response.
func bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return utils.ValidateStruct(dst)
}
