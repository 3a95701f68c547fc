package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

// HealthHandler handles health check and engine status requests
type HealthHandler struct {
	registry *domain.HealthRegistry
}

// NewHealthHandler creates a health handler
func NewHealthHandler(registry *domain.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": "1.0.0",
	})
}

// EngineHealth handles GET /api/v1/engines/health and reports the per-platform
// auth health the orchestrator tracks across requests.
func (h *HealthHandler) EngineHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Snapshot())
}
