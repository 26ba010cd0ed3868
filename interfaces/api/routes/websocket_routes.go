package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	websocketManager "decorlens/infrastructure/websocket"
	websocketHandler "decorlens/interfaces/api/websocket"
)

// WebSocketDeps carries the hub the /ws route registers clients with
type WebSocketDeps struct {
	Manager *websocketManager.Manager
}

func SetupWebSocketRoutes(app *fiber.App, deps *WebSocketDeps) {
	wsHandler := websocketHandler.NewWebSocketHandler(deps.Manager)

	app.Use("/ws", wsHandler.WebSocketUpgrade)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
