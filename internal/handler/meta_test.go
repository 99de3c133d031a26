package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/handler"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

type metaBody struct {
	Rows     int      `json:"rows"`
	MinDate  string   `json:"min_date"`
	MaxDate  string   `json:"max_date"`
	Markets  []string `json:"markets"`
	Channels []string `json:"channels"`
}

func getMeta(t *testing.T, store *storage.DatasetStore) metaBody {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/meta", handler.NewMetaHandler(store).HandleMeta)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/meta", http.NoBody)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body metaBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestHandleMeta(t *testing.T) {
	body := getMeta(t, testStore(t, testRecords()))

	if body.Rows != 3 {
		t.Errorf("rows: got %d, want 3", body.Rows)
	}
	if body.MinDate != "2024-01-01" || body.MaxDate != "2024-02-02" {
		t.Errorf("date span: got %s .. %s", body.MinDate, body.MaxDate)
	}

	wantMarkets := []string{"Austin, TX", "Portland, OR"}
	if len(body.Markets) != len(wantMarkets) {
		t.Fatalf("markets: got %v", body.Markets)
	}
	for i, want := range wantMarkets {
		if body.Markets[i] != want {
			t.Errorf("markets[%d]: got %q, want %q", i, body.Markets[i], want)
		}
	}

	wantChannels := []string{"social", "search", "display"}
	for i, want := range wantChannels {
		if body.Channels[i] != want {
			t.Errorf("channels[%d]: got %q, want %q", i, body.Channels[i], want)
		}
	}
}

func TestHandleMeta_EmptyDataset(t *testing.T) {
	body := getMeta(t, storage.NewDatasetStore())

	if body.Rows != 0 {
		t.Errorf("rows: got %d, want 0", body.Rows)
	}
	if body.MinDate != "" || body.MaxDate != "" {
		t.Errorf("expected empty date span, got %s .. %s", body.MinDate, body.MaxDate)
	}
	if len(body.Channels) != 3 {
		t.Errorf("channels: got %d entries, want 3", len(body.Channels))
	}
}
