package handlers

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/domain/services"
	"decorlens/pkg/utils"
)

type ProxyHandler struct {
	proxyService services.ImageProxyService
}

func NewProxyHandler(proxyService services.ImageProxyService) *ProxyHandler {
	return &ProxyHandler{
		proxyService: proxyService,
	}
}

// ProxyImage streams a remote image so the browser can use it without CORS issues
// @Summary Proxy an image
// @Tags Images
// @Produce image/jpeg
// @Param url query string true "Image URL"
// @Router /api/v1/proxy-image [get]
func (h *ProxyHandler) ProxyImage(c *fiber.Ctx) error {
	rawURL := c.Query("url")
	if rawURL == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "url is required", nil)
	}

	img, err := h.proxyService.Fetch(c.UserContext(), rawURL)
	if err != nil {
		status, msg := errorMessage(err, "Failed to proxy image")
		return utils.ErrorResponse(c, status, msg, err)
	}

	c.Set(fiber.HeaderContentType, img.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Status(fiber.StatusOK).Send(img.Data)
}
