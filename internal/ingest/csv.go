// Package ingest reads marketing performance CSV files into domain records.
// It is the validation boundary: the analytics core assumes every Record it
// receives is well formed, so the cleaning policy lives here.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"
)

// Column names expected in the header row, in any order.
const (
	colDate               = "date"
	colLocationID         = "location_id"
	colCity               = "city"
	colState              = "state"
	colRegion             = "region"
	colSessions           = "sessions"
	colPageViews          = "page_views"
	colBounceRate         = "bounce_rate"
	colConversionRate     = "conversion_rate"
	colOnlineOrders       = "online_orders"
	colAvgOrderValue      = "avg_order_value"
	colRevenue            = "revenue"
	colAdSpendSocial      = "ad_spend_social"
	colAdSpendSearch      = "ad_spend_search"
	colAdSpendDisplay     = "ad_spend_display"
	colImpressionsSocial  = "impressions_social"
	colImpressionsSearch  = "impressions_search"
	colImpressionsDisplay = "impressions_display"
	colClicksSocial       = "clicks_social"
	colClicksSearch       = "clicks_search"
	colClicksDisplay      = "clicks_display"
)

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{"2006-01-02", "01/02/2006"}

// ErrEmptyFile is returned when the input has no header row.
var ErrEmptyFile = errors.New("csv input is empty")

// Result is the outcome of one CSV load: the accepted records plus counts
// of rows dropped by the cleaning policy.
type Result struct {
	Records []domain.Record

	// RejectedDates counts rows dropped for an unparseable date.
	RejectedDates int
	// RejectedMarkets counts rows dropped for an empty city or state.
	RejectedMarkets int
}

// Rejected returns the total number of dropped rows.
func (r *Result) Rejected() int {
	return r.RejectedDates + r.RejectedMarkets
}

// ReadCSV parses a marketing CSV stream. The header row names the columns
// in any order; unknown columns are ignored and absent optional columns
// read as zero. Per the cleaning policy, unparseable numeric fields coerce
// to 0, while rows with an unparseable date or an empty city/state are
// rejected and counted rather than passed to the core.
func ReadCSV(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for {
		row, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			return res, nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("read row: %w", readErr)
		}

		rec, ok := parseRow(row, idx, res)
		if ok {
			res.Records = append(res.Records, rec)
		}
	}
}

// LoadFile reads a marketing CSV from disk.
func LoadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}

// columnIndex maps canonical column names to their position in the header.
type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{colDate, colCity, colState} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return idx, nil
}

// field returns the trimmed cell for a column, or "" when the column is
// absent or the row is short.
func (idx columnIndex) field(row []string, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, idx columnIndex, res *Result) (domain.Record, bool) {
	date, ok := parseDate(idx.field(row, colDate))
	if !ok {
		res.RejectedDates++
		return domain.Record{}, false
	}

	city := idx.field(row, colCity)
	state := idx.field(row, colState)
	if city == "" || state == "" {
		res.RejectedMarkets++
		return domain.Record{}, false
	}

	return domain.Record{
		Date:       date,
		LocationID: idx.field(row, colLocationID),
		City:       city,
		State:      state,
		Region:     idx.field(row, colRegion),

		Sessions:       parseInt(idx.field(row, colSessions)),
		PageViews:      parseInt(idx.field(row, colPageViews)),
		BounceRate:     parseFloat(idx.field(row, colBounceRate)),
		ConversionRate: parseFloat(idx.field(row, colConversionRate)),
		OnlineOrders:   parseInt(idx.field(row, colOnlineOrders)),
		AvgOrderValue:  parseFloat(idx.field(row, colAvgOrderValue)),
		Revenue:        parseFloat(idx.field(row, colRevenue)),

		AdSpendSocial:  parseFloat(idx.field(row, colAdSpendSocial)),
		AdSpendSearch:  parseFloat(idx.field(row, colAdSpendSearch)),
		AdSpendDisplay: parseFloat(idx.field(row, colAdSpendDisplay)),

		ImpressionsSocial:  parseInt(idx.field(row, colImpressionsSocial)),
		ImpressionsSearch:  parseInt(idx.field(row, colImpressionsSearch)),
		ImpressionsDisplay: parseInt(idx.field(row, colImpressionsDisplay)),

		ClicksSocial:  parseInt(idx.field(row, colClicksSocial)),
		ClicksSearch:  parseInt(idx.field(row, colClicksSearch)),
		ClicksDisplay: parseInt(idx.field(row, colClicksDisplay)),
	}, true
}

// parseDate parses a calendar date at UTC midnight so that equal dates
// compare equal as map keys and in range checks.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseInt coerces an unparseable or missing numeric cell to 0.
func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// parseFloat coerces an unparseable or missing numeric cell to 0.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
