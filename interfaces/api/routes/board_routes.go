package routes

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/interfaces/api/handlers"
)

func SetupBoardRoutes(api fiber.Router, h *handlers.Handlers, ai fiber.Handler) {
	boards := api.Group("/boards")

	boards.Post("/", h.Board.CreateBoard)
	boards.Post("/analyze", ai, h.Board.AnalyzeImage)
	boards.Post("/item-details", ai, h.Board.AddItemDetails)
	boards.Post("/more-items", ai, h.Board.SeeMoreItems)
	boards.Get("/:id", h.Board.GetBoard)
}
