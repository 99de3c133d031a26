package domain

import "time"

// Filter is the explicit selection state applied to the dataset on every
// recomputation. The zero value selects everything.
type Filter struct {
	// Start and End are inclusive date bounds; nil means unbounded on
	// that side.
	Start *time.Time
	End   *time.Time

	// Market restricts records to an exact market key match in its
	// display form ("Austin, TX"); empty means all markets.
	Market string

	// Channel selects which spend column downstream series sum. It never
	// excludes records; empty means the all-channel sum.
	Channel Channel
}

// Matches reports whether a record passes the date and market selection.
// Channel is deliberately not consulted: channel focus is a spend-column
// selection, not a record-exclusion rule.
func (f Filter) Matches(r Record) bool {
	if f.Start != nil && r.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && r.Date.After(*f.End) {
		return false
	}
	if f.Market != "" && r.Market().String() != f.Market {
		return false
	}
	return true
}
