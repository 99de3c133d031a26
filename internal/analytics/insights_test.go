package analytics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/analytics"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"
)

func TestBuildInsights_SingleMonthInsufficient(t *testing.T) {
	records := []domain.Record{
		{Date: day(2024, time.January, 1), City: "Austin", State: "TX", Revenue: 100},
		{Date: day(2024, time.January, 15), City: "Austin", State: "TX", Revenue: 200},
	}

	payload, ok := analytics.BuildInsights(records, "")

	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestBuildInsights_EmptyInsufficient(t *testing.T) {
	_, ok := analytics.BuildInsights(nil, "")
	assert.False(t, ok)
}

func TestBuildInsights_MoMDeltas(t *testing.T) {
	payload, ok := analytics.BuildInsights(austinRecords(), "")
	require.True(t, ok)

	assert.Equal(t, "Feb 2024", payload.CurrLabel)
	assert.Equal(t, "Jan 2024", payload.PrevLabel)

	assert.InDelta(t, 1500, payload.Curr.Revenue, deltaTolerance)
	assert.InDelta(t, 1000, payload.Prev.Revenue, deltaTolerance)
	assert.InDelta(t, 0.5, payload.MoM.Revenue, deltaTolerance)
	assert.InDelta(t, 0.25, payload.MoM.Orders, deltaTolerance)
}

func TestBuildInsights_MoMUsesLastTwoMonthsPresent(t *testing.T) {
	// A gap between months: MoM compares the two most recent buckets even
	// when they are not calendar-adjacent.
	records := []domain.Record{
		{Date: day(2024, time.January, 1), City: "Austin", State: "TX", Revenue: 100},
		{Date: day(2024, time.May, 1), City: "Austin", State: "TX", Revenue: 150},
	}

	payload, ok := analytics.BuildInsights(records, "")
	require.True(t, ok)

	assert.Equal(t, "May 2024", payload.CurrLabel)
	assert.Equal(t, "Jan 2024", payload.PrevLabel)
	assert.InDelta(t, 0.5, payload.MoM.Revenue, deltaTolerance)
}

func TestBuildInsights_YoYPresent(t *testing.T) {
	records := []domain.Record{
		{Date: day(2023, time.February, 1), City: "Austin", State: "TX", Revenue: 750},
		{Date: day(2024, time.January, 1), City: "Austin", State: "TX", Revenue: 1000},
		{Date: day(2024, time.February, 1), City: "Austin", State: "TX", Revenue: 1500},
	}

	payload, ok := analytics.BuildInsights(records, "")
	require.True(t, ok)

	assert.Equal(t, "Feb 2023", payload.YoYLabel)
	assert.False(t, payload.YoYApproximate)
	assert.InDelta(t, 750, payload.YoY.Revenue, deltaTolerance)
	assert.InDelta(t, 1.0, payload.YoYDelta.Revenue, deltaTolerance)
}

func TestBuildInsights_YoYMissingReadsAsApproximate(t *testing.T) {
	payload, ok := analytics.BuildInsights(austinRecords(), "")
	require.True(t, ok)

	// No Feb 2023 bucket: year-ago values are zero and the delta reads as
	// +100%, flagged approximate.
	assert.True(t, payload.YoYApproximate)
	assert.Zero(t, payload.YoY.Revenue)
	assert.InDelta(t, 1.0, payload.YoYDelta.Revenue, deltaTolerance)
}

func TestBuildInsights_DeltaConvention(t *testing.T) {
	cases := []struct {
		name       string
		curr, prev float64
		want       float64
	}{
		{"normal relative change", 150, 100, 0.5},
		{"appeared from zero", 100, 0, 1},
		{"both zero", 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := []domain.Record{
				{Date: day(2024, time.January, 1), City: "Austin", State: "TX", Revenue: tc.prev},
				{Date: day(2024, time.February, 1), City: "Austin", State: "TX", Revenue: tc.curr},
			}

			payload, ok := analytics.BuildInsights(records, "")
			require.True(t, ok)
			assert.InDelta(t, tc.want, payload.MoM.Revenue, deltaTolerance)
		})
	}
}

func TestBuildInsights_ChannelFocusSelectsSpend(t *testing.T) {
	records := []domain.Record{
		{
			Date: day(2024, time.January, 1), City: "Austin", State: "TX",
			Revenue: 100, AdSpendSocial: 10, AdSpendSearch: 40,
		},
		{
			Date: day(2024, time.February, 1), City: "Austin", State: "TX",
			Revenue: 100, AdSpendSocial: 20, AdSpendSearch: 40,
		},
	}

	payload, ok := analytics.BuildInsights(records, domain.ChannelSocial)
	require.True(t, ok)

	assert.InDelta(t, 20, payload.Curr.Spend, deltaTolerance)
	assert.InDelta(t, 5.0, payload.Curr.ROAS, deltaTolerance)
}

func TestBuildInsights_TopChannelIsLargestROASMover(t *testing.T) {
	// Social ROAS halves (big mover), search spend is flat (no move).
	records := []domain.Record{
		{
			Date: day(2024, time.January, 1), City: "Austin", State: "TX",
			Revenue: 1000, AdSpendSocial: 100, AdSpendSearch: 100,
		},
		{
			Date: day(2024, time.February, 1), City: "Austin", State: "TX",
			Revenue: 1000, AdSpendSocial: 200, AdSpendSearch: 100,
		},
	}

	payload, ok := analytics.BuildInsights(records, "")
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(payload.Narratives.TopChannel, "Social"),
		"top channel narrative: %q", payload.Narratives.TopChannel)
}

func TestBuildInsights_BestMarketIsHighestSignedGrowth(t *testing.T) {
	// Portland declines sharply (large magnitude, negative); Austin grows.
	records := []domain.Record{
		{Date: day(2024, time.January, 1), City: "Austin", State: "TX", Revenue: 100},
		{Date: day(2024, time.February, 1), City: "Austin", State: "TX", Revenue: 120},
		{Date: day(2024, time.January, 1), City: "Portland", State: "OR", Revenue: 1000},
		{Date: day(2024, time.February, 1), City: "Portland", State: "OR", Revenue: 100},
	}

	payload, ok := analytics.BuildInsights(records, "")
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(payload.Narratives.BestMarket, "Austin, TX"),
		"best market narrative: %q", payload.Narratives.BestMarket)
}

func TestBuildInsights_WatchMetricFlagsDecline(t *testing.T) {
	// Revenue up but spend up faster, so ROAS declines.
	records := []domain.Record{
		{
			Date: day(2024, time.January, 1), City: "Austin", State: "TX",
			Revenue: 1000, OnlineOrders: 10, Sessions: 100, AdSpendSocial: 100,
		},
		{
			Date: day(2024, time.February, 1), City: "Austin", State: "TX",
			Revenue: 1100, OnlineOrders: 11, Sessions: 100, AdSpendSocial: 400,
		},
	}

	payload, ok := analytics.BuildInsights(records, "")
	require.True(t, ok)

	assert.Contains(t, payload.Narratives.WatchMetric, "ROAS")
	assert.Contains(t, payload.Narratives.WatchMetric, "down")
}

func TestBuildInsights_Idempotent(t *testing.T) {
	records := austinRecords()

	first, ok1 := analytics.BuildInsights(records, "")
	second, ok2 := analytics.BuildInsights(records, "")

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}
