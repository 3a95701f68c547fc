package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/vidgrab-go/api/handlers"
	"github.com/yourusername/vidgrab-go/api/middleware"
	"github.com/yourusername/vidgrab-go/internal/app"
	"github.com/yourusername/vidgrab-go/internal/infrastructure"
)

// SetupRouter sets up the HTTP router
func SetupRouter(
	orchestrator *app.Orchestrator,
	responder *infrastructure.StreamingResponder,
	filenameCap int,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(orchestrator.Health())
	router.GET("/health", healthHandler.Health)

	mediaHandler := handlers.NewMediaHandler(orchestrator, responder, filenameCap, log)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/info", mediaHandler.Info)
		v1.POST("/download", mediaHandler.Download)
		v1.GET("/engines/health", healthHandler.EngineHealth)
	}

	return router
}
