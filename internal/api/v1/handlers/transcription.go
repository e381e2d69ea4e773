package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"s2x/internal/api/middleware"
	"s2x/internal/api/v1/dto"
	"s2x/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Create handles POST /api/v1/transcriptions
// Submits a job and starts polling it. A job already in flight is cancelled.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateTranscriptionRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.CreateTranscription(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response)
}

// Current handles GET /api/v1/transcriptions/current
func (h *TranscriptionHandler) Current(c *gin.Context) {
	response, err := h.service.CurrentTranscription(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Cancel handles DELETE /api/v1/transcriptions/current
func (h *TranscriptionHandler) Cancel(c *gin.Context) {
	if err := h.service.CancelTranscription(c.Request.Context()); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Share handles POST /api/v1/shares
// Creates a public share for the current job.
func (h *TranscriptionHandler) Share(c *gin.Context) {
	response, err := h.service.CreateShare(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
