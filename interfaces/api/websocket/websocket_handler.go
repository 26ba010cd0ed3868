package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	websocketManager "decorlens/infrastructure/websocket"
	"decorlens/pkg/logger"
)

type WebSocketHandler struct {
	manager *websocketManager.Manager
}

func NewWebSocketHandler(manager *websocketManager.Manager) *WebSocketHandler {
	return &WebSocketHandler{manager: manager}
}

// WebSocketUpgrade rejects plain HTTP requests and requires a valid board_id
func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	boardID, err := uuid.Parse(c.Query("board_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "board_id must be a valid UUID")
	}
	// Board events are published to the board id as room
	c.Locals("room", boardID.String())
	return c.Next()
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	room, _ := c.Locals("room").(string)

	h.manager.RegisterClient(c, room)
	defer h.manager.UnregisterClient(c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WebSocketError("read_message", "WebSocket read error", err, map[string]interface{}{"room": room})
			}
			return
		}
		if messageType == websocket.TextMessage {
			h.manager.HandleMessage(c, message)
		}
	}
}
