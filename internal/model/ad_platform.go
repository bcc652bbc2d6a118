package model

import "time"

const PlatformStatusPublished = "published"

// AdPlatform is one (ad, platform) entry. It is written once at publish time.
type AdPlatform struct {
	ID             int       `db:"id" json:"id"`
	AdID           int       `db:"ad_id" json:"ad_id"`
	PlatformName   string    `db:"platform_name" json:"platform_name"`
	Status         string    `db:"status" json:"status"`
	ReachCount     int       `db:"reach_count" json:"reach_count"`
	Impressions    int       `db:"impressions" json:"impressions"`
	Clicks         int       `db:"clicks" json:"clicks"`
	EngagementRate float64   `db:"engagement_rate" json:"engagement_rate"`
	PlatformPostID string    `db:"platform_post_id" json:"platform_post_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// PlatformAnalytics is the daily snapshot stored next to an AdPlatform.
type PlatformAnalytics struct {
	ID           int       `db:"id" json:"id"`
	AdPlatformID int       `db:"ad_platform_id" json:"ad_platform_id"`
	Date         time.Time `db:"date" json:"date"`
	Reach        int       `db:"reach" json:"reach"`
	Impressions  int       `db:"impressions" json:"impressions"`
	Clicks       int       `db:"clicks" json:"clicks"`
	Engagement   int       `db:"engagement" json:"engagement"`
}
