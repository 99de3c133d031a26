package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/analytics"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

// DashboardHandler serves the aggregated dashboard view: totals, per-date
// series, channel summary, and market summary for the requested filter.
type DashboardHandler struct {
	store *storage.DatasetStore
}

// NewDashboardHandler creates a DashboardHandler reading from the store.
func NewDashboardHandler(store *storage.DatasetStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

type datePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	Spend   float64 `json:"spend"`
	ROAS    float64 `json:"roas"`
}

type marketSummary struct {
	Market   string  `json:"market"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	Sessions int     `json:"sessions"`
	Spend    float64 `json:"spend"`
	ROAS     float64 `json:"roas"`
	CVR      float64 `json:"cvr"`
}

type dashboardResponse struct {
	Totals    analytics.Totals           `json:"totals"`
	ByDate    []datePoint                `json:"by_date"`
	ByChannel []analytics.ChannelSummary `json:"by_channel"`
	ByMarket  []marketSummary            `json:"by_market"`
}

// HandleDashboard filters the current snapshot and aggregates it.
func (h *DashboardHandler) HandleDashboard(c *gin.Context) {
	flt, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records := analytics.Filter(h.store.Snapshot().Records, flt)
	agg := analytics.Aggregate(records, flt.Channel)

	c.JSON(http.StatusOK, dashboardResponse{
		Totals:    agg.Totals,
		ByDate:    toDatePoints(agg.ByDate),
		ByChannel: agg.ByChannel,
		ByMarket:  toMarketSummaries(agg.ByMarket),
	})
}

func toDatePoints(points []analytics.DatePoint) []datePoint {
	out := make([]datePoint, 0, len(points))
	for _, p := range points {
		out = append(out, datePoint{
			Date:    p.Date.Format(dateLayout),
			Revenue: p.Revenue,
			Orders:  p.Orders,
			Spend:   p.Spend,
			ROAS:    p.ROAS,
		})
	}
	return out
}

func toMarketSummaries(markets []analytics.MarketSummary) []marketSummary {
	out := make([]marketSummary, 0, len(markets))
	for _, m := range markets {
		out = append(out, marketSummary{
			Market:   m.Market.String(),
			Revenue:  m.Revenue,
			Orders:   m.Orders,
			Sessions: m.Sessions,
			Spend:    m.Spend,
			ROAS:     m.ROAS,
			CVR:      m.CVR,
		})
	}
	return out
}
