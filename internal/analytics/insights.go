package analytics

import (
	"fmt"
	"sort"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"
)

// minMonthsForInsights is the number of distinct monthly buckets required
// before month-over-month comparison is defined.
const minMonthsForInsights = 2

// MonthMetrics is one monthly rollup bucket. Spend follows the channel
// focus selection, identically to the per-date series.
type MonthMetrics struct {
	Month    domain.MonthKey `json:"-"`
	Revenue  float64         `json:"revenue"`
	Orders   int             `json:"orders"`
	Sessions int             `json:"sessions"`
	Spend    float64         `json:"spend"`
	CVR      float64         `json:"cvr"`
	ROAS     float64         `json:"roas"`
}

// Delta holds relative changes for the four headline metrics, each computed
// with the uniform pctChange convention.
type Delta struct {
	Revenue float64 `json:"revenue"`
	Orders  float64 `json:"orders"`
	ROAS    float64 `json:"roas"`
	CVR     float64 `json:"cvr"`
}

// Narratives are the short formatted insight strings for the dashboard.
type Narratives struct {
	TopChannel  string `json:"top_channel"`
	BestMarket  string `json:"best_market"`
	WatchMetric string `json:"watch_metric"`
}

// InsightPayload is the full month-over-month / year-over-year comparison
// for the two most recent monthly buckets present in the input.
type InsightPayload struct {
	CurrLabel string `json:"curr_label"`
	PrevLabel string `json:"prev_label"`
	YoYLabel  string `json:"yoy_label"`

	Curr MonthMetrics `json:"curr"`
	Prev MonthMetrics `json:"prev"`
	YoY  MonthMetrics `json:"yoy"`

	MoM      Delta `json:"mom"`
	YoYDelta Delta `json:"yoy_delta"`

	// YoYApproximate is set when no bucket exists exactly 12 months before
	// the current one. The year-ago values are then treated as zero, which
	// makes YoY deltas read as +100%; clients should badge the comparison
	// as approximate rather than hide it.
	YoYApproximate bool `json:"yoy_approximate"`

	Narratives Narratives `json:"narratives"`
}

// BuildInsights derives the MoM/YoY insight payload from a record set.
// The second return value is false when fewer than two distinct monthly
// buckets exist; callers must treat that as a normal "insufficient data"
// state, not an error.
//
// MoM compares the last two buckets present in the data, which are not
// necessarily calendar-adjacent when the data has gaps.
func BuildInsights(records []domain.Record, focus domain.Channel) (*InsightPayload, bool) {
	months := monthlySeries(records, focus)
	if len(months) < minMonthsForInsights {
		return nil, false
	}

	curr := months[len(months)-1]
	prev := months[len(months)-2]

	yoyKey := curr.Month.YearAgo()
	yoy := MonthMetrics{Month: yoyKey}
	yoyApprox := true
	for _, m := range months {
		if m.Month == yoyKey {
			yoy = m
			yoyApprox = false
			break
		}
	}

	payload := &InsightPayload{
		CurrLabel:      curr.Month.Label(),
		PrevLabel:      prev.Month.Label(),
		YoYLabel:       yoyKey.Label(),
		Curr:           curr,
		Prev:           prev,
		YoY:            yoy,
		MoM:            deltaBetween(curr, prev),
		YoYDelta:       deltaBetween(curr, yoy),
		YoYApproximate: yoyApprox,
	}
	payload.Narratives = Narratives{
		TopChannel:  topChannelNarrative(records),
		BestMarket:  bestMarketNarrative(records),
		WatchMetric: watchMetricNarrative(payload.MoM),
	}
	return payload, true
}

// monthlySeries groups records into monthly buckets, computes each bucket's
// metrics with the given channel focus, and returns them ascending by month.
func monthlySeries(records []domain.Record, focus domain.Channel) []MonthMetrics {
	buckets := make(map[domain.MonthKey]*MonthMetrics)
	for _, r := range records {
		key := domain.MonthOf(r.Date)
		b, ok := buckets[key]
		if !ok {
			b = &MonthMetrics{Month: key}
			buckets[key] = b
		}
		b.Revenue += r.Revenue
		b.Orders += r.OnlineOrders
		b.Sessions += r.Sessions
		b.Spend += r.FocusedSpend(focus)
	}

	out := make([]MonthMetrics, 0, len(buckets))
	for _, b := range buckets {
		b.CVR = ratio(float64(b.Orders), float64(b.Sessions))
		b.ROAS = ratio(b.Revenue, b.Spend)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

func deltaBetween(curr, prev MonthMetrics) Delta {
	return Delta{
		Revenue: pctChange(curr.Revenue, prev.Revenue),
		Orders:  pctChange(float64(curr.Orders), float64(prev.Orders)),
		ROAS:    pctChange(curr.ROAS, prev.ROAS),
		CVR:     pctChange(curr.CVR, prev.CVR),
	}
}

// topChannelNarrative builds each channel's own monthly series (never
// restricted by the caller's channel focus), computes its MoM deltas from
// its own last two months, and reports the channel whose ROAS delta has the
// largest absolute magnitude.
func topChannelNarrative(records []domain.Record) string {
	type mover struct {
		channel domain.Channel
		mom     Delta
	}

	var best *mover
	for _, ch := range domain.Channels() {
		series := monthlySeries(records, ch)
		if len(series) < minMonthsForInsights {
			continue
		}
		d := deltaBetween(series[len(series)-1], series[len(series)-2])
		if best == nil || abs(d.ROAS) > abs(best.mom.ROAS) {
			best = &mover{channel: ch, mom: d}
		}
	}
	if best == nil {
		return ""
	}

	return fmt.Sprintf("%s is the largest ROAS mover: %s MoM (revenue %s, CVR %s)",
		channelTitle(best.channel),
		formatPct(best.mom.ROAS), formatPct(best.mom.Revenue), formatPct(best.mom.CVR))
}

// bestMarketNarrative groups records by market, computes each market's MoM
// revenue growth from its own last two monthly buckets, and reports the
// market with the single highest signed growth. Markets with fewer than two
// buckets are skipped.
func bestMarketNarrative(records []domain.Record) string {
	byMarket := make(map[domain.MarketKey][]domain.Record)
	var order []domain.MarketKey
	for _, r := range records {
		key := r.Market()
		if _, ok := byMarket[key]; !ok {
			order = append(order, key)
		}
		byMarket[key] = append(byMarket[key], r)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Less(order[j]) })

	var (
		bestMarket domain.MarketKey
		bestGrowth float64
		found      bool
	)
	for _, key := range order {
		series := monthlySeries(byMarket[key], "")
		if len(series) < minMonthsForInsights {
			continue
		}
		growth := pctChange(series[len(series)-1].Revenue, series[len(series)-2].Revenue)
		if !found || growth > bestGrowth {
			bestMarket = key
			bestGrowth = growth
			found = true
		}
	}
	if !found {
		return ""
	}

	return fmt.Sprintf("%s shows the strongest growth: revenue %s MoM",
		bestMarket.String(), formatPct(bestGrowth))
}

// watchMetricNarrative flags the weakest headline MoM delta. When every
// metric is flat or improving it reports the revenue trend instead.
func watchMetricNarrative(mom Delta) string {
	metrics := []struct {
		name  string
		delta float64
	}{
		{"Revenue", mom.Revenue},
		{"Orders", mom.Orders},
		{"ROAS", mom.ROAS},
		{"CVR", mom.CVR},
	}

	worst := metrics[0]
	for _, m := range metrics[1:] {
		if m.delta < worst.delta {
			worst = m
		}
	}

	if worst.delta < 0 {
		return fmt.Sprintf("%s is down %.1f%% MoM, worth watching", worst.name, -worst.delta*100)
	}
	return fmt.Sprintf("All core metrics flat or up MoM; revenue %s", formatPct(mom.Revenue))
}

func channelTitle(ch domain.Channel) string {
	switch ch {
	case domain.ChannelSocial:
		return "Social"
	case domain.ChannelSearch:
		return "Search"
	case domain.ChannelDisplay:
		return "Display"
	default:
		return string(ch)
	}
}

// formatPct renders a fractional delta as a signed percentage, e.g. +50.0%.
func formatPct(frac float64) string {
	return fmt.Sprintf("%+.1f%%", frac*100)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
