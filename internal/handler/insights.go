package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/analytics"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

// InsightsHandler serves the MoM/YoY insight payload.
type InsightsHandler struct {
	store *storage.DatasetStore
}

// NewInsightsHandler creates an InsightsHandler reading from the store.
func NewInsightsHandler(store *storage.DatasetStore) *InsightsHandler {
	return &InsightsHandler{store: store}
}

type insightsResponse struct {
	Available bool                      `json:"available"`
	Reason    string                    `json:"reason,omitempty"`
	Insights  *analytics.InsightPayload `json:"insights,omitempty"`
}

// HandleInsights filters the snapshot by date range and market, then builds
// the insight payload with the requested channel focus. Fewer than two
// monthly buckets is a normal state reported as available:false, not an
// error status.
func (h *InsightsHandler) HandleInsights(c *gin.Context) {
	flt, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records := analytics.Filter(h.store.Snapshot().Records, flt)
	payload, ok := analytics.BuildInsights(records, flt.Channel)
	if !ok {
		c.JSON(http.StatusOK, insightsResponse{
			Available: false,
			Reason:    "at least two distinct months of data are required",
		})
		return
	}

	c.JSON(http.StatusOK, insightsResponse{Available: true, Insights: payload})
}
