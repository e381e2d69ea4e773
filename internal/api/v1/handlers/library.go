package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"s2x/internal/api/middleware"
	"s2x/internal/api/v1/services"
)

type LibraryHandler struct {
	service services.LibraryService
}

func NewLibraryHandler(service services.LibraryService) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// List handles GET /api/v1/library
func (h *LibraryHandler) List(c *gin.Context) {
	response, err := h.service.ListLibrary(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

type HealthHandler struct {
	service services.HealthService
}

func NewHealthHandler(service services.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Check handles GET /health. A degraded remote answers 503.
func (h *HealthHandler) Check(c *gin.Context) {
	response, err := h.service.CheckHealth(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	status := http.StatusOK
	if response.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}
