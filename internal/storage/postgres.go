package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"
)

// selectMarketingDaily reads the full dataset in date order. Row order is
// irrelevant to the analytics core, but a stable order keeps loads
// reproducible.
const selectMarketingDaily = `SELECT date, location_id, city, state, region,
	sessions, page_views, bounce_rate, conversion_rate, online_orders,
	avg_order_value, revenue,
	ad_spend_social, ad_spend_search, ad_spend_display,
	impressions_social, impressions_search, impressions_display,
	clicks_social, clicks_search, clicks_display
FROM marketing_daily
ORDER BY date, location_id`

// LoadRecords reads the whole marketing_daily table into domain records.
// The schema enforces the ingest guarantees (NOT NULL city/state, numeric
// defaults of 0), so rows come back already clean.
func LoadRecords(ctx context.Context, db *sql.DB) ([]domain.Record, error) {
	rows, err := db.QueryContext(ctx, selectMarketingDaily)
	if err != nil {
		return nil, fmt.Errorf("query marketing_daily: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.Record
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(
			&r.Date, &r.LocationID, &r.City, &r.State, &r.Region,
			&r.Sessions, &r.PageViews, &r.BounceRate, &r.ConversionRate, &r.OnlineOrders,
			&r.AvgOrderValue, &r.Revenue,
			&r.AdSpendSocial, &r.AdSpendSearch, &r.AdSpendDisplay,
			&r.ImpressionsSocial, &r.ImpressionsSearch, &r.ImpressionsDisplay,
			&r.ClicksSocial, &r.ClicksSearch, &r.ClicksDisplay,
		); err != nil {
			return nil, fmt.Errorf("scan marketing_daily row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate marketing_daily rows: %w", err)
	}

	return records, nil
}
