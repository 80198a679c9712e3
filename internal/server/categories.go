package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptvault/promptvault/internal/domain"
	"github.com/promptvault/promptvault/internal/service"
)

// CategoriesHandler serves the /categories resource family.
type CategoriesHandler struct {
	svc *service.Service
}

// NewCategoriesHandler mounts the category routes on the authenticated group.
func NewCategoriesHandler(r *gin.RouterGroup, svc *service.Service) *CategoriesHandler {
	handler := &CategoriesHandler{svc: svc}
	group := r.Group("/categories")
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PATCH("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	return handler
}

// List returns the caller's categories plus system categories.
func (h *CategoriesHandler) List(c *gin.Context) {
	typ := domain.CategoryType(c.Query("type"))
	if typ != "" && typ != domain.CategoryPrompt && typ != domain.CategorySkill {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be prompt or skill"})
		return
	}
	cats, err := h.svc.ListCategories(c.Request.Context(), caller(c), typ)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// Create inserts a new user category; system categories cannot be created
// through the API.
func (h *CategoriesHandler) Create(c *gin.Context) {
	var in service.CreateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := h.svc.CreateCategory(c.Request.Context(), caller(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "category": created})
}

// Get returns one category visible to the caller.
func (h *CategoriesHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cat, err := h.svc.GetCategory(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

// Update applies a partial update. System categories always refuse.
func (h *CategoriesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in service.UpdateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := h.svc.UpdateCategory(c.Request.Context(), caller(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "category": updated})
}

// Delete removes a non-system category owned by the caller.
func (h *CategoriesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
