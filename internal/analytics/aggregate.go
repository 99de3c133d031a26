package analytics

import (
	"sort"
	"time"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"
)

// Totals holds the top-level KPIs for a record set. Spend and ROAS always
// cover all three channels regardless of channel focus; focus only shifts
// the per-date and per-market series.
type Totals struct {
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	Sessions int     `json:"sessions"`
	Spend    float64 `json:"spend"`
	AOV      float64 `json:"aov"`
	CVR      float64 `json:"cvr"`
	ROAS     float64 `json:"roas"`
}

// DatePoint is one entry of the per-date series. Spend is the channel-focus
// selection (the focused channel's spend, or the all-channel sum).
type DatePoint struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
	Spend   float64   `json:"spend"`
	ROAS    float64   `json:"roas"`
}

// ChannelSummary reports one channel's spend efficiency. ROAS here divides
// the overall revenue by the channel's own spend: the dataset carries no
// per-channel revenue attribution, so this answers "what would this
// channel's spend imply against total revenue", not attributed return.
type ChannelSummary struct {
	Channel     domain.Channel `json:"channel"`
	Spend       float64        `json:"spend"`
	Clicks      int            `json:"clicks"`
	Impressions int            `json:"impressions"`
	CPC         float64        `json:"cpc"`
	CTR         float64        `json:"ctr"`
	ROAS        float64        `json:"roas"`
}

// MarketSummary aggregates one (city, state) market, ordered by revenue
// descending in the ByMarket series.
type MarketSummary struct {
	Market   domain.MarketKey `json:"-"`
	Revenue  float64          `json:"revenue"`
	Orders   int              `json:"orders"`
	Sessions int              `json:"sessions"`
	Spend    float64          `json:"spend"`
	ROAS     float64          `json:"roas"`
	CVR      float64          `json:"cvr"`
}

// Aggregation is the full view-ready output of one aggregation pass.
type Aggregation struct {
	Totals    Totals
	ByDate    []DatePoint
	ByChannel []ChannelSummary
	ByMarket  []MarketSummary
}

// Aggregate computes totals, the per-date series, the per-channel summary,
// and the per-market summary for a record set in a single pass per
// grouping. Everything is recomputed from scratch on every call; the input
// is never mutated. An empty record set yields zero totals, empty ByDate
// and ByMarket, and a ByChannel that still lists all three channels with
// zero metrics, since channels are a fixed enumeration.
func Aggregate(records []domain.Record, focus domain.Channel) Aggregation {
	return Aggregation{
		Totals:    aggregateTotals(records),
		ByDate:    aggregateByDate(records, focus),
		ByChannel: aggregateByChannel(records),
		ByMarket:  aggregateByMarket(records, focus),
	}
}

func aggregateTotals(records []domain.Record) Totals {
	var t Totals
	for _, r := range records {
		t.Revenue += r.Revenue
		t.Orders += r.OnlineOrders
		t.Sessions += r.Sessions
		t.Spend += r.TotalAdSpend()
	}
	t.AOV = ratio(t.Revenue, float64(t.Orders))
	t.CVR = ratio(float64(t.Orders), float64(t.Sessions))
	t.ROAS = ratio(t.Revenue, t.Spend)
	return t
}

func aggregateByDate(records []domain.Record, focus domain.Channel) []DatePoint {
	byDate := make(map[time.Time]*DatePoint)
	for _, r := range records {
		p, ok := byDate[r.Date]
		if !ok {
			p = &DatePoint{Date: r.Date}
			byDate[r.Date] = p
		}
		p.Revenue += r.Revenue
		p.Orders += r.OnlineOrders
		p.Spend += r.FocusedSpend(focus)
	}

	out := make([]DatePoint, 0, len(byDate))
	for _, p := range byDate {
		p.ROAS = ratio(p.Revenue, p.Spend)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// aggregateByChannel always reports all three channels side by side; the
// channel focus does not apply here.
func aggregateByChannel(records []domain.Record) []ChannelSummary {
	var totalRevenue float64
	for _, r := range records {
		totalRevenue += r.Revenue
	}

	channels := domain.Channels()
	out := make([]ChannelSummary, 0, len(channels))
	for _, ch := range channels {
		s := ChannelSummary{Channel: ch}
		for _, r := range records {
			s.Spend += r.AdSpend(ch)
			s.Clicks += r.Clicks(ch)
			s.Impressions += r.Impressions(ch)
		}
		s.CPC = ratio(s.Spend, float64(s.Clicks))
		s.CTR = ratio(float64(s.Clicks), float64(s.Impressions))
		s.ROAS = ratio(totalRevenue, s.Spend)
		out = append(out, s)
	}
	return out
}

func aggregateByMarket(records []domain.Record, focus domain.Channel) []MarketSummary {
	byMarket := make(map[domain.MarketKey]*MarketSummary)
	for _, r := range records {
		key := r.Market()
		m, ok := byMarket[key]
		if !ok {
			m = &MarketSummary{Market: key}
			byMarket[key] = m
		}
		m.Revenue += r.Revenue
		m.Orders += r.OnlineOrders
		m.Sessions += r.Sessions
		m.Spend += r.FocusedSpend(focus)
	}

	out := make([]MarketSummary, 0, len(byMarket))
	for _, m := range byMarket {
		m.ROAS = ratio(m.Revenue, m.Spend)
		m.CVR = ratio(float64(m.Orders), float64(m.Sessions))
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Market.Less(out[j].Market)
	})
	return out
}
