package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptvault/promptvault/internal/service"
)

// SkillsHandler serves the /skills resource family.
type SkillsHandler struct {
	svc *service.Service
}

// NewSkillsHandler mounts the skill routes on the authenticated group.
func NewSkillsHandler(r *gin.RouterGroup, svc *service.Service) *SkillsHandler {
	handler := &SkillsHandler{svc: svc}
	group := r.Group("/skills")
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PATCH("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	return handler
}

// List returns the caller's skills, filtered and paginated.
func (h *SkillsHandler) List(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		return
	}
	page, err := h.svc.ListSkills(c.Request.Context(), caller(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create inserts a new skill owned by the caller.
func (h *SkillsHandler) Create(c *gin.Context) {
	var in service.CreateSkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := h.svc.CreateSkill(c.Request.Context(), caller(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "skill": created})
}

// Get returns one of the caller's skills by id.
func (h *SkillsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sk, err := h.svc.GetSkill(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skill": sk})
}

// Update applies a partial update; absent fields stay untouched.
func (h *SkillsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in service.UpdateSkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := h.svc.UpdateSkill(c.Request.Context(), caller(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "skill": updated})
}

// Delete removes a skill; deleting an already-absent skill succeeds.
func (h *SkillsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSkill(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
