package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptvault/promptvault/internal/service"
)

// HealthHandler reports store reachability.
type HealthHandler struct {
	svc *service.Service
}

// NewHealthHandler mounts the health endpoint.
func NewHealthHandler(r *gin.Engine, svc *service.Service) *HealthHandler {
	handler := &HealthHandler{svc: svc}
	r.GET("/healthz", handler.Health)
	return handler
}

// Health pings the storage backend.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
