package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptvault/promptvault/internal/service"
)

// TransferHandler serves bulk import/export.
type TransferHandler struct {
	svc *service.Service
}

// NewTransferHandler mounts the import/export routes on the authenticated
// group.
func NewTransferHandler(r *gin.RouterGroup, svc *service.Service) *TransferHandler {
	handler := &TransferHandler{svc: svc}
	group := r.Group("/import-export")
	group.GET("/export", handler.ExportOptions)
	group.POST("/export", handler.Export)
	group.POST("/import", handler.Import)
	return handler
}

// ExportOptions lists supported formats and scopes.
func (h *TransferHandler) ExportOptions(c *gin.Context) {
	c.JSON(http.StatusOK, service.ExportOptions())
}

// Export serializes the caller's data.
func (h *TransferHandler) Export(c *gin.Context) {
	var in struct {
		Format service.ExportFormat `json:"format"`
		Type   service.ExportScope  `json:"type"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := h.svc.Export(c.Request.Context(), caller(c), in.Format, in.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Data, "filename": result.Filename})
}

// Import loads a JSON snapshot into the caller's account. The response
// carries per-item messages for everything skipped or failed.
func (h *TransferHandler) Import(c *gin.Context) {
	var in struct {
		Data string `json:"data"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := h.svc.Import(c.Request.Context(), caller(c), []byte(in.Data))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  result.Success,
		"imported": gin.H{"prompts": result.Prompts, "skills": result.Skills},
		"errors":   result.Errors,
	})
}
