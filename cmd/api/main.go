package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"decorlens/interfaces/api/handlers"
	"decorlens/interfaces/api/middleware"
	"decorlens/interfaces/api/routes"
	"decorlens/pkg/di"
	"decorlens/pkg/logger"
)

// @title Decorlens API
// @version 1.0
// @description Room photo analysis, detected furniture and shoppable product matches

// @BasePath /api/v1

// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token
// @description Admin token for logs and maintenance

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		logger.StartupError("container_init_failed", "Failed to initialize container", err, nil)
		os.Exit(1)
	}

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
		BodyLimit:    8 * 1024 * 1024,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.CorsMiddleware(&cfg.CORS))
	app.Use(middleware.RequestLogger(container.Metrics))

	h := handlers.NewHandlers(container.GetHandlerServices(), container.GetHandlerInfrastructure(), cfg)
	routes.SetupRoutes(app, h, &routes.WebSocketDeps{Manager: container.WebSocketManager}, container.Metrics, cfg)

	setupGracefulShutdown(app, container)

	port := cfg.App.Port
	logger.Startup("server_starting", "Server starting", map[string]interface{}{
		"port":        port,
		"environment": cfg.App.Env,
		"health":      fmt.Sprintf("http://localhost:%s/health", port),
		"api":         fmt.Sprintf("http://localhost:%s/api/v1", port),
		"websocket":   fmt.Sprintf("ws://localhost:%s/ws?board_id=<id>", port),
		"metrics":     fmt.Sprintf("http://localhost:%s/metrics", port),
	})

	if err := app.Listen(":" + port); err != nil {
		logger.StartupError("server_failed", "Server failed to start", err, nil)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *fiber.App, container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Startup("shutdown_started", "Gracefully shutting down", nil)

		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			logger.StartupError("http_shutdown_failed", "Error stopping HTTP server", err, nil)
		}

		if err := container.Cleanup(); err != nil {
			logger.StartupError("cleanup_failed", "Error during cleanup", err, nil)
		}

		os.Exit(0)
	}()
}
