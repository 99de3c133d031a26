// Package handler implements the analytics API endpoints.
package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"
)

// dateLayout is the query-parameter date format.
const dateLayout = "2006-01-02"

// parseFilter reads the shared filter query parameters (start, end, market,
// channel) into a domain filter. Dates are inclusive bounds and either may
// be absent.
func parseFilter(c *gin.Context) (domain.Filter, error) {
	var f domain.Filter

	if s := c.Query("start"); s != "" {
		t, err := parseDateParam(s)
		if err != nil {
			return f, fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", s)
		}
		f.Start = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := parseDateParam(s)
		if err != nil {
			return f, fmt.Errorf("invalid end date %q (want YYYY-MM-DD)", s)
		}
		f.End = &t
	}

	f.Market = c.Query("market")

	ch, err := domain.ParseChannel(c.Query("channel"))
	if err != nil {
		return f, fmt.Errorf("invalid channel %q (want social, search, or display)", c.Query("channel"))
	}
	f.Channel = ch

	return f, nil
}

// parseDateParam parses a date at UTC midnight, matching how ingested
// record dates are normalized.
func parseDateParam(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
