// Package domain defines the marketing dataset types shared across the service.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Channel identifies one of the fixed ad channels in the dataset.
type Channel string

// The three ad channels tracked per record. The empty Channel value means
// "no channel focus" and is never stored on a record.
const (
	ChannelSocial  Channel = "social"
	ChannelSearch  Channel = "search"
	ChannelDisplay Channel = "display"
)

// ErrUnknownChannel is returned when a channel string is not one of the
// fixed channel set.
var ErrUnknownChannel = errors.New("unknown channel")

// Channels returns the fixed channel enumeration in reporting order.
func Channels() []Channel {
	return []Channel{ChannelSocial, ChannelSearch, ChannelDisplay}
}

// ParseChannel parses a channel string. The empty string and "all" both map
// to the no-focus sentinel (empty Channel).
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	case string(ChannelSocial):
		return ChannelSocial, nil
	case string(ChannelSearch):
		return ChannelSearch, nil
	case string(ChannelDisplay):
		return ChannelDisplay, nil
	default:
		return "", ErrUnknownChannel
	}
}

// Record is one row of the marketing performance dataset: one location on
// one calendar day. Records are immutable once parsed; the ingestion
// boundary guarantees non-empty City and State and a valid Date.
type Record struct {
	Date       time.Time `json:"date"`
	LocationID string    `json:"location_id"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Region     string    `json:"region"`

	Sessions       int     `json:"sessions"`
	PageViews      int     `json:"page_views"`
	BounceRate     float64 `json:"bounce_rate"`
	ConversionRate float64 `json:"conversion_rate"`
	OnlineOrders   int     `json:"online_orders"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	Revenue        float64 `json:"revenue"`

	AdSpendSocial  float64 `json:"ad_spend_social"`
	AdSpendSearch  float64 `json:"ad_spend_search"`
	AdSpendDisplay float64 `json:"ad_spend_display"`

	ImpressionsSocial  int `json:"impressions_social"`
	ImpressionsSearch  int `json:"impressions_search"`
	ImpressionsDisplay int `json:"impressions_display"`

	ClicksSocial  int `json:"clicks_social"`
	ClicksSearch  int `json:"clicks_search"`
	ClicksDisplay int `json:"clicks_display"`
}

// Market returns the record's market grouping key.
func (r Record) Market() MarketKey {
	return MarketKey{City: r.City, State: r.State}
}

// AdSpend returns the spend for a single channel.
func (r Record) AdSpend(ch Channel) float64 {
	switch ch {
	case ChannelSocial:
		return r.AdSpendSocial
	case ChannelSearch:
		return r.AdSpendSearch
	case ChannelDisplay:
		return r.AdSpendDisplay
	default:
		return 0
	}
}

// TotalAdSpend returns the sum of spend across all three channels.
func (r Record) TotalAdSpend() float64 {
	return r.AdSpendSocial + r.AdSpendSearch + r.AdSpendDisplay
}

// FocusedSpend returns the spend selected by a channel focus: the focused
// channel's own spend when focus is set, otherwise the all-channel sum.
func (r Record) FocusedSpend(focus Channel) float64 {
	if focus == "" {
		return r.TotalAdSpend()
	}
	return r.AdSpend(focus)
}

// Clicks returns the click count for a single channel.
func (r Record) Clicks(ch Channel) int {
	switch ch {
	case ChannelSocial:
		return r.ClicksSocial
	case ChannelSearch:
		return r.ClicksSearch
	case ChannelDisplay:
		return r.ClicksDisplay
	default:
		return 0
	}
}

// Impressions returns the impression count for a single channel.
func (r Record) Impressions(ch Channel) int {
	switch ch {
	case ChannelSocial:
		return r.ImpressionsSocial
	case ChannelSearch:
		return r.ImpressionsSearch
	case ChannelDisplay:
		return r.ImpressionsDisplay
	default:
		return 0
	}
}
