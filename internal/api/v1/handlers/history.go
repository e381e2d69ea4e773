package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"s2x/internal/api/middleware"
	"s2x/internal/api/v1/services"
)

// HistoryHandler serves the local ledger
type HistoryHandler struct {
	service services.HistoryService
}

func NewHistoryHandler(service services.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	response, err := h.service.ListHistory(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Clear handles DELETE /api/v1/history
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.service.ClearHistory(c.Request.Context()); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
