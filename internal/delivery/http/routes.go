package http

import (
	"github.com/gin-gonic/gin"
	"github.com/kitanog/weaviate-demo/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health and status endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/status", handler.Status)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.POST("", handler.UploadCatalog)
			catalog.POST("/sample", handler.LoadSampleCatalog)
			catalog.GET("/sample", handler.DownloadSample)
		}

		v1.POST("/search/:mode", handler.Search)
	}

	return router
}
