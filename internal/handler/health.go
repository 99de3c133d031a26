package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

// HealthHandler handles health check requests. The service is degraded
// rather than unhealthy when the dataset is empty: the API still answers,
// every aggregate just reads as zero.
type HealthHandler struct {
	version string
	store   *storage.DatasetStore
}

// NewHealthHandler creates a HealthHandler reporting the given version.
func NewHealthHandler(version string, store *storage.DatasetStore) *HealthHandler {
	return &HealthHandler{version: version, store: store}
}

// HealthCheck returns service health status.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	if h.store.Len() == 0 {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"version":      h.version,
		"dataset_rows": h.store.Len(),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthHead answers lightweight HEAD probes from load balancers.
func (h *HealthHandler) HealthHead(c *gin.Context) {
	c.Status(http.StatusOK)
}
