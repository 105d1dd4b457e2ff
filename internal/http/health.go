package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthController reports service liveness.
type HealthController struct{}

// NewHealthController creates a new HealthController.
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health handles GET /health.
func (controller *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ping handles GET /ping.
func (controller *HealthController) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
