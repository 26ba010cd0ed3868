package handlers

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/domain/dto"
	"decorlens/domain/services"
	"decorlens/pkg/utils"
)

type DecorHandler struct {
	decorService services.DecorValidationService
}

func NewDecorHandler(decorService services.DecorValidationService) *DecorHandler {
	return &DecorHandler{
		decorService: decorService,
	}
}

// ValidateDecor checks that an image shows a room or decor. Model failures
// still answer 200 with a permissive verdict.
// @Summary Validate decor image
// @Tags Decor
// @Accept json
// @Produce json
// @Param request body dto.ValidateDecorRequest true "Image"
// @Success 200 {object} services.DecorValidation
// @Router /api/v1/decor/validate [post]
func (h *DecorHandler) ValidateDecor(c *fiber.Ctx) error {
	var req dto.ValidateDecorRequest
	if err := bind(c, &req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, h.decorService.Validate(c.UserContext(), req.ImageURL))
}
