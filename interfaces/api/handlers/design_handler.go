package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"decorlens/domain/dto"
	"decorlens/domain/services"
	"decorlens/pkg/logger"
	"decorlens/pkg/utils"
)

type DesignHandler struct {
	designService services.DesignService
}

func NewDesignHandler(designService services.DesignService) *DesignHandler {
	return &DesignHandler{
		designService: designService,
	}
}

// AnalyzeRoom estimates room type, dimensions and layout from a photo
// @Summary Analyze room
// @Tags Design
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRoomRequest true "Room photo"
// @Success 200 {object} dto.AnalyzeRoomResponse
// @Router /api/v1/rooms/analyze [post]
func (h *DesignHandler) AnalyzeRoom(c *fiber.Ctx) error {
	var req dto.AnalyzeRoomRequest
	if err := bind(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	analysis, err := h.designService.AnalyzeRoom(c.UserContext(), &services.RoomAnalysisRequest{
		ImageURL:          req.ImageURL,
		UnknownDimensions: req.UnknownDimensions,
	})
	if err != nil {
		status, msg := errorMessage(err, "Failed to analyze room")
		if status >= fiber.StatusInternalServerError {
			logger.Error(logger.CategoryAPI, "room_analysis_failed", msg, err, map[string]interface{}{
				"request_id": utils.RequestID(c),
			})
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   msg,
		})
	}

	return utils.SuccessResponse(c, dto.AnalyzeRoomResponse{
		Success:  true,
		Analysis: analysis,
	})
}

// GenerateCarpenterSpec writes build instructions for a detected item
// @Summary Generate carpenter spec
// @Tags Design
// @Accept json
// @Produce json
// @Param request body dto.CarpenterSpecRequest true "Item"
// @Success 200 {object} dto.CarpenterSpecResponse
// @Router /api/v1/items/carpenter-specs [post]
func (h *DesignHandler) GenerateCarpenterSpec(c *fiber.Ctx) error {
	var req dto.CarpenterSpecRequest
	if err := bind(c, &req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	spec, err := h.designService.GenerateCarpenterSpec(c.UserContext(), &services.CarpenterSpecRequest{
		ItemID:      uuid.MustParse(req.ItemID),
		ItemName:    req.ItemName,
		Category:    req.Category,
		Style:       req.Style,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		status, msg := errorMessage(err, "Failed to generate carpenter spec")
		return utils.ErrorResponse(c, status, msg, err)
	}

	return utils.SuccessResponse(c, dto.CarpenterSpecResponse{
		ItemID:        req.ItemID,
		CarpenterSpec: spec,
	})
}

// GenerateStyleDirections
// @Summary Suggest style directions
// @Tags Design
// @Accept json
// @Produce json
// @Param request body dto.StyleDirectionsRequest true "Room"
// @Success 200 {object} dto.StyleDirectionsResponse
// @Router /api/v1/styles/directions [post]
func (h *DesignHandler) GenerateStyleDirections(c *fiber.Ctx) error {
	var req dto.StyleDirectionsRequest
	if err := bind(c, &req); err != nil {
		return utils.ErrorResponseWithRequestID(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	directions, err := h.designService.GenerateStyleDirections(c.UserContext(), &services.StyleDirectionsRequest{
		RoomType:       req.RoomType,
		SizeClass:      req.SizeClass,
		Colors:         req.Colors,
		Furniture:      req.Furniture,
		ExcludedStyles: req.ExcludedStyles,
	})
	if err != nil {
		status, msg := errorMessage(err, "Failed to generate style directions")
		return utils.ErrorResponseWithRequestID(c, status, msg, err)
	}

	return utils.SuccessResponse(c, dto.StyleDirectionsResponse{Directions: directions})
}

// GenerateStyleInspirations
// @Summary Generate style inspirations
// @Tags Design
// @Accept json
// @Produce json
// @Param request body dto.StyleContextRequest true "Style"
// @Success 200 {object} dto.StyleInspirationsResponse
// @Router /api/v1/styles/inspirations [post]
func (h *DesignHandler) GenerateStyleInspirations(c *fiber.Ctx) error {
	var req dto.StyleContextRequest
	if err := bind(c, &req); err != nil {
		return utils.ErrorResponseWithRequestID(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	inspirations, err := h.designService.GenerateStyleInspirations(c.UserContext(), styleContext(&req))
	if err != nil {
		status, msg := errorMessage(err, "Failed to generate style inspirations")
		return utils.ErrorResponseWithRequestID(c, status, msg, err)
	}

	return utils.SuccessResponse(c, dto.StyleInspirationsResponse{Inspirations: inspirations})
}

// GenerateDeepDesign
// @Summary Generate full design plan
// @Tags Design
// @Accept json
// @Produce json
// @Param request body dto.StyleContextRequest true "Style"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/styles/deep-design [post]
func (h *DesignHandler) GenerateDeepDesign(c *fiber.Ctx) error {
	var req dto.StyleContextRequest
	if err := bind(c, &req); err != nil {
		return utils.ErrorResponseWithRequestID(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	design, err := h.designService.GenerateDeepDesign(c.UserContext(), styleContext(&req))
	if err != nil {
		status, msg := errorMessage(err, "Failed to generate design")
		return utils.ErrorResponseWithRequestID(c, status, msg, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(design)
}

func styleContext(req *dto.StyleContextRequest) *services.StyleContext {
	return &services.StyleContext{
		RoomType:      req.RoomType,
		SizeClass:     req.SizeClass,
		SelectedStyle: req.SelectedStyle,
		Colors:        req.Colors,
		Furniture:     req.Furniture,
		Notes:         req.Notes,
	}
}
