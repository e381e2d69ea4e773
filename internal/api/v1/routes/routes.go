package routes

import (
	"github.com/gin-gonic/gin"

	"s2x/internal/api/v1/handlers"
	"s2x/internal/api/v1/services"
)

// ServiceContainer holds the services the v1 routes are built on
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	HistoryService       services.HistoryService
	LibraryService       services.LibraryService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", transcriptionHandler.Create)
		transcriptions.GET("/current", transcriptionHandler.Current)
		transcriptions.DELETE("/current", transcriptionHandler.Cancel)
	}
	router.POST("/shares", transcriptionHandler.Share)

	historyHandler := handlers.NewHistoryHandler(container.HistoryService)
	history := router.Group("/history")
	{
		history.GET("", historyHandler.List)
		history.DELETE("", historyHandler.Clear)
	}

	libraryHandler := handlers.NewLibraryHandler(container.LibraryService)
	router.GET("/library", libraryHandler.List)
}
