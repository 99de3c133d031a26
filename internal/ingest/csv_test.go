package ingest_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/ingest"
)

const sampleCSV = `date,location_id,city,state,region,sessions,page_views,bounce_rate,conversion_rate,online_orders,avg_order_value,revenue,ad_spend_social,ad_spend_search,ad_spend_display,impressions_social,impressions_search,impressions_display,clicks_social,clicks_search,clicks_display
2024-01-01,loc_001,Austin,TX,South,500,1200,0.42,0.04,20,50.00,1000.00,100.00,0,0,1000,0,0,50,0,0
2024-01-02,loc_002,Portland,OR,West,300,800,0.51,0.03,9,44.00,396.00,0,80.00,20.00,0,2000,500,0,40,10
`

func TestReadCSV_ParsesRows(t *testing.T) {
	res, err := ingest.ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	if res.Rejected() != 0 {
		t.Fatalf("expected 0 rejected rows, got %d", res.Rejected())
	}

	first := res.Records[0]
	wantDate := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(wantDate) {
		t.Errorf("date: got %v, want %v", first.Date, wantDate)
	}
	if first.City != "Austin" || first.State != "TX" {
		t.Errorf("market: got %s, %s", first.City, first.State)
	}
	if first.Sessions != 500 {
		t.Errorf("sessions: got %d, want 500", first.Sessions)
	}
	if first.Revenue != 1000 {
		t.Errorf("revenue: got %v, want 1000", first.Revenue)
	}
	if first.AdSpendSocial != 100 {
		t.Errorf("ad_spend_social: got %v, want 100", first.AdSpendSocial)
	}
}

func TestReadCSV_HeaderOrderIrrelevant(t *testing.T) {
	reordered := "revenue,state,city,date\n250.50,TX,Austin,2024-03-05\n"

	res, err := ingest.ReadCSV(strings.NewReader(reordered))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	if res.Records[0].Revenue != 250.50 {
		t.Errorf("revenue: got %v, want 250.50", res.Records[0].Revenue)
	}
	// Columns absent from the header read as zero.
	if res.Records[0].Sessions != 0 {
		t.Errorf("sessions: got %d, want 0", res.Records[0].Sessions)
	}
}

func TestReadCSV_BadNumericCoercesToZero(t *testing.T) {
	input := "date,city,state,sessions,revenue\n2024-01-01,Austin,TX,not-a-number,oops\n"

	res, err := ingest.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	if res.Records[0].Sessions != 0 {
		t.Errorf("sessions: got %d, want 0", res.Records[0].Sessions)
	}
	if res.Records[0].Revenue != 0 {
		t.Errorf("revenue: got %v, want 0", res.Records[0].Revenue)
	}
}

func TestReadCSV_BadDateRejectsRow(t *testing.T) {
	input := "date,city,state,revenue\nnot-a-date,Austin,TX,100\n2024-01-02,Austin,TX,200\n"

	res, err := ingest.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	if res.RejectedDates != 1 {
		t.Errorf("rejected dates: got %d, want 1", res.RejectedDates)
	}
}

func TestReadCSV_EmptyMarketRejectsRow(t *testing.T) {
	input := "date,city,state,revenue\n2024-01-01,,TX,100\n2024-01-02,Austin,,200\n"

	res, err := ingest.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(res.Records))
	}
	if res.RejectedMarkets != 2 {
		t.Errorf("rejected markets: got %d, want 2", res.RejectedMarkets)
	}
}

func TestReadCSV_SlashDateFormat(t *testing.T) {
	input := "date,city,state\n01/15/2024,Austin,TX\n"

	res, err := ingest.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !res.Records[0].Date.Equal(want) {
		t.Errorf("date: got %v, want %v", res.Records[0].Date, want)
	}
}

func TestReadCSV_MissingRequiredColumn(t *testing.T) {
	input := "date,city,revenue\n2024-01-01,Austin,100\n"

	_, err := ingest.ReadCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for missing state column, got nil")
	}
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, err := ingest.ReadCSV(strings.NewReader(""))
	if !errors.Is(err, ingest.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}
