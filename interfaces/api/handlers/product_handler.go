package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"decorlens/domain/dto"
	"decorlens/domain/services"
	"decorlens/pkg/utils"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// SearchProducts returns shoppable matches for a detected item
// @Summary Search products for an item
// @Tags Products
// @Accept json
// @Produce json
// @Param request body dto.SearchProductsRequest true "Item"
// @Success 200 {object} dto.SearchProductsResponse
// @Router /api/v1/products/search [post]
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	var req dto.SearchProductsRequest
	if err := bind(c, &req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	matches, err := h.productService.SearchProducts(c.UserContext(), uuid.MustParse(req.DetectedItemID))
	if err != nil {
		status, msg := errorMessage(err, "Failed to search products")
		return utils.ErrorResponse(c, status, msg, err)
	}

	return utils.SuccessResponse(c, dto.SearchProductsResponse{
		Products: dto.MatchesToProductResponse(matches),
	})
}
