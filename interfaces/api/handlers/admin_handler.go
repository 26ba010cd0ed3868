package handlers

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/domain/services"
	"decorlens/pkg/utils"
)

type AdminHandler struct {
	boardService services.BoardService
}

func NewAdminHandler(boardService services.BoardService) *AdminHandler {
	return &AdminHandler{boardService: boardService}
}

// ReconcileBoards repairs detected_items_count on boards whose count drifted
// from their item rows
// @Summary Reconcile board counts
// @Tags Admin
// @Security AdminToken
// @Produce json
// @Success 200 {object} services.ReconcileResult
// @Router /api/v1/admin/boards/reconcile [post]
func (h *AdminHandler) ReconcileBoards(c *fiber.Ctx) error {
	result, err := h.boardService.ReconcileCounts(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reconcile boards", err)
	}
	return utils.SuccessResponse(c, result)
}
