package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptvault/promptvault/internal/service"
)

// PublicHandler serves the unauthenticated sharing mirrors. Reads succeed
// only for public resources and bump the usage count as a side effect.
type PublicHandler struct {
	svc *service.Service
}

// NewPublicHandler mounts the public routes; no identity middleware runs
// in front of these.
func NewPublicHandler(r *gin.Engine, svc *service.Service) *PublicHandler {
	handler := &PublicHandler{svc: svc}
	group := r.Group("/public")
	group.GET("/prompts/:id", handler.GetPrompt)
	group.GET("/skills/:id", handler.GetSkill)
	return handler
}

// GetPrompt returns a public prompt by id.
func (h *PublicHandler) GetPrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.GetPublicPrompt(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": p})
}

// GetSkill returns a public skill by id.
func (h *PublicHandler) GetSkill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sk, err := h.svc.GetPublicSkill(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skill": sk})
}
