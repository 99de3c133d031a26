package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

// MetaHandler describes the loaded dataset: row count, date span, and the
// available filter values. The dashboard builds its filter widgets from
// this endpoint.
type MetaHandler struct {
	store *storage.DatasetStore
}

// NewMetaHandler creates a MetaHandler reading from the store.
func NewMetaHandler(store *storage.DatasetStore) *MetaHandler {
	return &MetaHandler{store: store}
}

type metaResponse struct {
	Rows     int      `json:"rows"`
	MinDate  string   `json:"min_date,omitempty"`
	MaxDate  string   `json:"max_date,omitempty"`
	Markets  []string `json:"markets"`
	Channels []string `json:"channels"`
	Source   string   `json:"source,omitempty"`
	LoadedAt string   `json:"loaded_at,omitempty"`
}

// HandleMeta reports the dataset descriptor for the current snapshot.
func (h *MetaHandler) HandleMeta(c *gin.Context) {
	snap := h.store.Snapshot()

	resp := metaResponse{
		Rows:     len(snap.Records),
		Markets:  marketList(snap.Records),
		Channels: channelList(),
		Source:   snap.Source,
	}
	if !snap.LoadedAt.IsZero() {
		resp.LoadedAt = snap.LoadedAt.UTC().Format(time.RFC3339)
	}
	if minDate, maxDate, ok := dateSpan(snap.Records); ok {
		resp.MinDate = minDate.Format(dateLayout)
		resp.MaxDate = maxDate.Format(dateLayout)
	}

	c.JSON(http.StatusOK, resp)
}

func marketList(records []domain.Record) []string {
	seen := make(map[domain.MarketKey]bool)
	var keys []domain.MarketKey
	for _, r := range records {
		key := r.Market()
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}
	return out
}

func channelList() []string {
	channels := domain.Channels()
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		out = append(out, string(ch))
	}
	return out
}

func dateSpan(records []domain.Record) (minDate, maxDate time.Time, ok bool) {
	if len(records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate, maxDate = records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}
	return minDate, maxDate, true
}
