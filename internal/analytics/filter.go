package analytics

import "github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"

// Filter returns the records passing the date-range and market selection,
// preserving input order. It never fails: an empty result is valid and all
// downstream metrics degrade to zero. The filter's channel is intentionally
// ignored here (see domain.Filter.Matches).
func Filter(records []domain.Record, f domain.Filter) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
