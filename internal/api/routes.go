package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/config"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/handler"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/logger"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/middleware"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

// SetupRoutes configures all API routes.
func SetupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	log logger.Logger,
	store *storage.DatasetStore,
	done <-chan struct{},
) {
	health := handler.NewHealthHandler(cfg.Service.Version, store)
	router.GET("/health", health.HealthCheck)
	router.HEAD("/health", health.HealthHead)

	v1 := router.Group("/api/v1")
	v1.GET("/dashboard", handler.NewDashboardHandler(store).HandleDashboard)
	v1.GET("/insights", handler.NewInsightsHandler(store).HandleInsights)
	v1.GET("/meta", handler.NewMetaHandler(store).HandleMeta)

	// Dataset replacement is the only write path; rate-limit it per IP.
	upload := v1.Group("")
	rateLimitWindow := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	upload.Use(middleware.RateLimiter(cfg.RateLimit.MaxUploadsPerWindow, rateLimitWindow, done))
	upload.POST("/dataset",
		handler.NewUploadHandler(store, log, cfg.Service.UploadMaxBytes).HandleUpload)
}
