package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

var marketingColumns = []string{
	"date", "location_id", "city", "state", "region",
	"sessions", "page_views", "bounce_rate", "conversion_rate", "online_orders",
	"avg_order_value", "revenue",
	"ad_spend_social", "ad_spend_search", "ad_spend_display",
	"impressions_social", "impressions_search", "impressions_display",
	"clicks_social", "clicks_search", "clicks_display",
}

func TestLoadRecords(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer func() { _ = db.Close() }()

	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(marketingColumns).
		AddRow(date, "loc_001", "Austin", "TX", "South",
			500, 1200, 0.42, 0.04, 20,
			50.0, 1000.0,
			100.0, 0.0, 0.0,
			1000, 0, 0,
			50, 0, 0)

	mock.ExpectQuery("SELECT (.+) FROM marketing_daily").WillReturnRows(rows)

	records, err := storage.LoadRecords(context.Background(), db)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if !r.Date.Equal(date) {
		t.Errorf("date: got %v, want %v", r.Date, date)
	}
	if r.City != "Austin" || r.State != "TX" {
		t.Errorf("market: got %s, %s", r.City, r.State)
	}
	if r.Revenue != 1000 {
		t.Errorf("revenue: got %v, want 1000", r.Revenue)
	}
	if r.AdSpendSocial != 100 {
		t.Errorf("ad_spend_social: got %v, want 100", r.AdSpendSocial)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestLoadRecords_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT (.+) FROM marketing_daily").
		WillReturnError(context.DeadlineExceeded)

	if _, err := storage.LoadRecords(context.Background(), db); err == nil {
		t.Fatal("expected error from failed query, got nil")
	}
}
