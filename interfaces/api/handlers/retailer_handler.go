package handlers

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/domain/dto"
	"decorlens/pkg/retailquery"
	"decorlens/pkg/utils"
)

type RetailerHandler struct {
	affiliate retailquery.Affiliate
}

func NewRetailerHandler(affiliate retailquery.Affiliate) *RetailerHandler {
	return &RetailerHandler{affiliate: affiliate}
}

// BuildQuery turns furniture attributes into a retailer search query and
// per-retailer search links
// @Summary Build retailer query
// @Tags Retailers
// @Accept json
// @Produce json
// @Param request body retailquery.Attributes true "Attributes"
// @Success 200 {object} dto.RetailerQueryResponse
// @Router /api/v1/retailer/query [post]
func (h *RetailerHandler) BuildQuery(c *fiber.Ctx) error {
	var attrs retailquery.Attributes
	if err := c.BodyParser(&attrs); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	query := retailquery.Build(attrs)
	if query == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "at least one attribute is required", nil)
	}

	return utils.SuccessResponse(c, dto.RetailerQueryResponse{
		Query: query,
		Links: retailquery.Links(query, h.affiliate),
	})
}
