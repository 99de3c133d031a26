package domain

import "time"

// MarketKey identifies a market as a (city, state) pair. Grouping uses the
// struct value directly rather than a formatted string, so separator
// characters in city names cannot collide.
type MarketKey struct {
	City  string
	State string
}

// String renders the market in its display form, e.g. "Austin, TX".
// Filter input matches against this form.
func (k MarketKey) String() string {
	return k.City + ", " + k.State
}

// Less orders market keys lexicographically by city then state. Used as a
// deterministic tie-breaker when sorting market summaries.
func (k MarketKey) Less(other MarketKey) bool {
	if k.City != other.City {
		return k.City < other.City
	}
	return k.State < other.State
}

// MonthKey identifies a calendar month: a record's date truncated to the
// first of the month. Derived fresh on every insight run, never stored.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the monthly bucket key for a date.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// YearAgo returns the calendar month exactly 12 months earlier.
func (m MonthKey) YearAgo() MonthKey {
	return MonthKey{Year: m.Year - 1, Month: m.Month}
}

// Before reports whether m is chronologically before other.
func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Label renders the month in human-readable form, e.g. "Jan 2024".
func (m MonthKey) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}
