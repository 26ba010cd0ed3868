package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"decorlens/domain/dto"
	"decorlens/domain/services"
	"decorlens/pkg/utils"
)

type BoardHandler struct {
	boardService services.BoardService
}

func NewBoardHandler(boardService services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard starts a new analysis session for an uploaded image
// @Summary Create board
// @Tags Boards
// @Accept json
// @Produce json
// @Param request body dto.CreateBoardRequest true "Board"
// @Success 201 {object} dto.BoardResponse
// @Router /api/v1/boards [post]
func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	var req dto.CreateBoardRequest
	if err := bind(c, &req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	board, err := h.boardService.CreateBoard(c.UserContext(), req.SourceImageURL)
	if err != nil {
		status, msg := errorMessage(err, "Failed to create board")
		return utils.ErrorResponse(c, status, msg, err)
	}

	return utils.CreatedResponse(c, dto.BoardToResponse(board))
}

// GetBoard returns a board with its detected items
// @Summary Get board
// @Tags Boards
// @Produce json
// @Param id path string true "Board ID"
// @Success 200 {object} dto.BoardDetailResponse
// @Router /api/v1/boards/{id} [get]
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid board ID", err)
	}

	board, items, err := h.boardService.GetBoard(c.UserContext(), id)
	if err != nil {
		status, msg := errorMessage(err, "Failed to load board")
		return utils.ErrorResponse(c, status, msg, err)
	}

	return utils.SuccessResponse(c, dto.BoardDetailResponse{
		Board:         dto.BoardToResponse(board),
		DetectedItems: dto.DetectedItemsToResponse(items),
	})
}

// AnalyzeImage runs item detection for a board
// @Summary Analyze board image
// @Tags Boards
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeImageRequest true "Analyze request"
// @Success 200 {object} dto.DetectedItemsResponse
// @Router /api/v1/boards/analyze [post]
func (h *BoardHandler) AnalyzeImage(c *fiber.Ctx) error {
	var req dto.AnalyzeImageRequest
	if err := bind(c, &req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}

	items, err := h.boardService.AnalyzeImage(c.UserContext(), uuid.MustParse(req.BoardID), req.ImageURL)
	if err != nil {
		status, msg := errorMessage(err, "Failed to analyze image")
		return utils.ErrorResponse(c, status, msg, err)
	}

	return utils.SuccessResponse(c, dto.DetectedItemsResponse{
		DetectedItems: dto.DetectedItemsToResponse(items),
	})
}

// AddItemDetails enriches a board's items with materials and dimensions
// @Summary Add item details
// @Tags Boards
// @Accept json
// @Produce json
// @Param request body dto.BoardRequest true "Board"
// @Success 200 {object} dto.DetectedItemsResponse
// @Router /api/v1/boards/item-details [post]
func (h *BoardHandler) AddItemDetails(c *fiber.Ctx) error {
	var req dto.BoardRequest
	if err := bind(c, &req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}
	boardID := uuid.MustParse(req.BoardID)

	items, err := h.boardService.AddItemDetails(c.UserContext(), boardID)
	if err != nil {
		status, msg := errorMessage(err, "Failed to add item details")
		return utils.ErrorResponse(c, status, msg, err)
	}

	return utils.SuccessResponse(c, dto.DetectedItemsResponse{
		DetectedItems: dto.DetectedItemsToResponse(items),
	})
}

// SeeMoreItems looks for items the first pass missed
// @Summary Find more items
// @Tags Boards
// @Accept json
// @Produce json
// @Param request body dto.BoardRequest true "Board"
// @Success 200 {object} dto.SeeMoreItemsResponse
// @Router /api/v1/boards/more-items [post]
func (h *BoardHandler) SeeMoreItems(c *fiber.Ctx) error {
	var req dto.BoardRequest
	if err := bind(c, &req); err != nil {
		return utils.ValidationErrorResponse(c, err)
	}
	boardID := uuid.MustParse(req.BoardID)

	result, err := h.boardService.SeeMoreItems(c.UserContext(), boardID)
	if err != nil {
		status, msg := errorMessage(err, "Failed to find more items")
		return utils.ErrorResponse(c, status, msg, err)
	}

	return utils.SuccessResponse(c, dto.SeeMoreItemsResponse{
		DetectedItems: dto.DetectedItemsToResponse(result.Items),
		RoomMaterials: result.RoomMaterials,
		NewItemsCount: result.NewItemsCount,
	})
}
