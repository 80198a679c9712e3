package restapi

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/service"
)

// TagsHandler serves the /tags resource family. Tags are keyed by name,
// not id; the path parameter is the URL-encoded tag name.
type TagsHandler struct {
	svc *service.Service
}

// NewTagsHandler mounts the tag routes on the authenticated group.
func NewTagsHandler(r *gin.RouterGroup, svc *service.Service) *TagsHandler {
	handler := &TagsHandler{svc: svc}
	group := r.Group("/tags")
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.DELETE("/:name", handler.Delete)
	return handler
}

// List returns the effective tag vocabulary.
func (h *TagsHandler) List(c *gin.Context) {
	typ := domain.CategoryType(c.Query("type"))
	if typ != "" && typ != domain.CategoryPrompt && typ != domain.CategorySkill {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be prompt or skill"})
		return
	}
	tags, err := h.svc.ListTags(c.Request.Context(), typ)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// Create adds a managed tag.
func (h *TagsHandler) Create(c *gin.Context) {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := h.svc.CreateTag(c.Request.Context(), caller(c), in.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tag": created.Name})
}

// Delete removes a managed tag and scrubs it from every prompt and skill.
// The response reports per-record scrub failures.
func (h *TagsHandler) Delete(c *gin.Context) {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil || name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag name"})
		return
	}
	result, err := h.svc.DeleteTag(c.Request.Context(), caller(c), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
