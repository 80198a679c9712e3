package restapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptvault/promptvault/internal/service"
	"github.com/promptvault/promptvault/internal/store"
)

// PromptsHandler serves the /prompts resource family.
type PromptsHandler struct {
	svc *service.Service
}

// NewPromptsHandler mounts the prompt routes on the authenticated group.
func NewPromptsHandler(r *gin.RouterGroup, svc *service.Service) *PromptsHandler {
	handler := &PromptsHandler{svc: svc}
	group := r.Group("/prompts")
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PATCH("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.GET("/:id/versions", handler.Versions)
	return handler
}

// parseID validates the id path parameter before any store access and
// writes the 400 itself when the token is malformed.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id format"})
		return uuid.Nil, false
	}
	return id, true
}

// listFilter reads the shared list query parameters.
func listFilter(c *gin.Context) (store.ListFilter, bool) {
	var filter store.ListFilter

	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id format"})
			return filter, false
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("tags"); raw != "" {
		filter.Tags = strings.Split(raw, ",")
	}
	if raw := c.Query("favorite"); raw != "" {
		fav := raw == "true"
		filter.Favorite = &fav
	}
	filter.Search = c.Query("search")
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return filter, true
}

// List returns the caller's prompts, filtered and paginated.
func (h *PromptsHandler) List(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		return
	}
	page, err := h.svc.ListPrompts(c.Request.Context(), caller(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create inserts a new prompt owned by the caller.
func (h *PromptsHandler) Create(c *gin.Context) {
	var in service.CreatePromptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := h.svc.CreatePrompt(c.Request.Context(), caller(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "prompt": created})
}

// Get returns one of the caller's prompts by id.
func (h *PromptsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.GetPrompt(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": p})
}

// Update applies a partial update; absent fields stay untouched.
func (h *PromptsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in service.UpdatePromptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := h.svc.UpdatePrompt(c.Request.Context(), caller(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prompt": updated})
}

// Delete removes a prompt; deleting an already-absent prompt succeeds.
func (h *PromptsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePrompt(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Versions returns the prompt's content history, newest first.
func (h *PromptsHandler) Versions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	versions, err := h.svc.GetPromptVersions(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": versions})
}
