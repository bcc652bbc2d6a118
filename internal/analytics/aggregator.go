// Package analytics rolls an ad's platform entries up for display.
package analytics

import (
	"sort"

	"github.com/unclebandit/adboost-backend/internal/model"
)

type PlatformShare struct {
	Platform       string  `json:"platform"`
	Status         string  `json:"status"`
	Reach          int     `json:"reach"`
	Impressions    int     `json:"impressions"`
	Clicks         int     `json:"clicks"`
	EngagementRate float64 `json:"engagement_rate"`
	// Percent of the ad's totals, 0..100.
	ImpressionShare float64 `json:"impression_share"`
	ClickShare      float64 `json:"click_share"`
}

type Summary struct {
	PlatformCount    int     `json:"platform_count"`
	TotalReach       int     `json:"total_reach"`
	TotalImpressions int     `json:"total_impressions"`
	TotalClicks      int     `json:"total_clicks"`
	// AverageEngagementRate is the plain mean over entries, not weighted by
	// impressions.
	AverageEngagementRate float64         `json:"average_engagement_rate"`
	Breakdown             []PlatformShare `json:"breakdown"`
}

// Aggregate never fails; no entries yields a zero Summary.
func Aggregate(entries []model.AdPlatform) Summary {
	summary := Summary{Breakdown: []PlatformShare{}}
	if len(entries) == 0 {
		return summary
	}

	var rateSum float64
	for _, e := range entries {
		summary.TotalReach += e.ReachCount
		summary.TotalImpressions += e.Impressions
		summary.TotalClicks += e.Clicks
		rateSum += e.EngagementRate
	}
	summary.PlatformCount = len(entries)
	summary.AverageEngagementRate = rateSum / float64(len(entries))

	impressionDenom := float64(max(summary.TotalImpressions, 1))
	clickDenom := float64(max(summary.TotalClicks, 1))

	for _, e := range entries {
		summary.Breakdown = append(summary.Breakdown, PlatformShare{
			Platform:        e.PlatformName,
			Status:          e.Status,
			Reach:           e.ReachCount,
			Impressions:     e.Impressions,
			Clicks:          e.Clicks,
			EngagementRate:  e.EngagementRate,
			ImpressionShare: float64(e.Impressions) / impressionDenom * 100,
			ClickShare:      float64(e.Clicks) / clickDenom * 100,
		})
	}

	sort.SliceStable(summary.Breakdown, func(i, j int) bool {
		return summary.Breakdown[i].Reach > summary.Breakdown[j].Reach
	})

	return summary
}
