package routes

import (
	"github.com/gofiber/fiber/v2"

	"decorlens/interfaces/api/handlers"
	"decorlens/interfaces/api/middleware"
)

// SetupAdminRoutes mounts log access and maintenance behind the admin token
func SetupAdminRoutes(router fiber.Router, h *handlers.Handlers, adminToken string) {
	admin := router.Group("/admin", middleware.AdminToken(adminToken))

	admin.Get("/logs", h.Log.GetLogs)
	admin.Get("/logs/files", h.Log.GetLogFiles)
	admin.Get("/logs/stats", h.Log.GetLogStats)

	admin.Post("/boards/reconcile", h.Admin.ReconcileBoards)
}
