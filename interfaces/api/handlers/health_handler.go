package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"decorlens/domain/models"
	"decorlens/pkg/scheduler"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	infra   *Infrastructure
	service string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(infra *Infrastructure, service string) *HealthHandler {
	if infra == nil {
		infra = &Infrastructure{}
	}
	return &HealthHandler{infra: infra, service: service}
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status  string `json:"status"` // "ok", "error", "unavailable"
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// DetailedHealthResponse represents detailed health check response
type DetailedHealthResponse struct {
	Status     string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
	Metrics    *HealthMetrics             `json:"metrics,omitempty"`
	Jobs       []scheduler.JobStatus      `json:"jobs,omitempty"`
}

// HealthMetrics contains board pipeline counters
type HealthMetrics struct {
	UploadedBoards int64 `json:"uploaded_boards"`
	AnalyzedBoards int64 `json:"analyzed_boards"`
	DriftedBoards  int   `json:"drifted_boards"`
}

// Health is the liveness probe
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Server is running",
		"service": h.service,
	})
}

// DetailedHealth godoc
// @Summary Get detailed system health
// @Description Returns detailed health status of all system components
// @Tags Health
// @Produce json
// @Success 200 {object} DetailedHealthResponse
// @Router /health/detailed [get]
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	response := DetailedHealthResponse{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	allHealthy := true
	hasCriticalFailure := false

	dbHealth := h.checkDatabase(ctx)
	response.Components["database"] = dbHealth
	if dbHealth.Status != "ok" {
		hasCriticalFailure = true
	}

	// Redis is optional; the in-memory fallbacks keep serving without it
	redisHealth := h.checkRedis(ctx)
	response.Components["redis"] = redisHealth
	if redisHealth.Status == "error" {
		allHealthy = false
	}

	visionHealth := ComponentHealth{Status: "ok", Message: "API key configured"}
	if !h.infra.VisionConfigured {
		visionHealth = ComponentHealth{Status: "unavailable", Message: "GEMINI_API_KEY not set"}
		allHealthy = false
	}
	response.Components["vision"] = visionHealth

	if dbHealth.Status == "ok" {
		metrics := h.getMetrics(ctx)
		response.Metrics = metrics
		if metrics != nil && metrics.DriftedBoards > 0 {
			allHealthy = false
		}
	}

	if h.infra.Scheduler != nil {
		response.Jobs = h.infra.Scheduler.Jobs()
	}

	if hasCriticalFailure {
		response.Status = "unhealthy"
	} else if !allHealthy {
		response.Status = "degraded"
	} else {
		response.Status = "healthy"
	}

	statusCode := fiber.StatusOK
	if response.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.infra.DB == nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Database not configured",
		}
	}

	sqlDB, err := h.infra.DB.DB()
	if err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Failed to get database connection: " + err.Error(),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Database ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkRedis(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.infra.RedisClient == nil {
		return ComponentHealth{
			Status:  "unavailable",
			Message: "Redis not configured",
		}
	}

	if err := h.infra.RedisClient.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Redis ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) getMetrics(ctx context.Context) *HealthMetrics {
	repo := h.infra.BoardRepository
	if repo == nil {
		return nil
	}

	metrics := &HealthMetrics{}
	if n, err := repo.CountByStatus(ctx, models.BoardStatusUploaded); err == nil {
		metrics.UploadedBoards = n
	}
	if n, err := repo.CountByStatus(ctx, models.BoardStatusAnalyzed); err == nil {
		metrics.AnalyzedBoards = n
	}
	// Drift is repaired by the reconcile job; a non-zero value here is transient
	if drift, err := repo.ListCountDrift(ctx, 100); err == nil {
		metrics.DriftedBoards = len(drift)
	}

	return metrics
}
