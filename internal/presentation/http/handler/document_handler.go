package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/application/service"
	"github.com/sangkips/posledger/internal/presentation/http/dto/response"
)

// DocumentHandler handles document reversal
type DocumentHandler struct {
	reversalService *service.ReversalService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(reversalService *service.ReversalService) *DocumentHandler {
	return &DocumentHandler{reversalService: reversalService}
}

// Delete reverts a sale, purchase or stock adjustment
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.reversalService.DeleteDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document reverted successfully", result)
}
