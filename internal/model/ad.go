package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Ad has no stored status column; status is derived by the lifecycle package.
type Ad struct {
	ID                  int             `db:"id" json:"id"`
	BusinessID          int             `db:"business_id" json:"business_id"`
	AdFormat            string          `db:"ad_format" json:"ad_format"`
	Headline            string          `db:"headline" json:"headline"`
	BodyText            string          `db:"body_text" json:"body_text"`
	CallToAction        string          `db:"call_to_action" json:"call_to_action"`
	TargetKeywords      pq.StringArray  `db:"target_keywords" json:"target_keywords"`
	Region              string          `db:"region" json:"region"`
	DistanceKm          float64         `db:"distance_km" json:"distance_km"`
	IsFixedPrice        bool            `db:"is_fixed_price" json:"is_fixed_price"`
	PricePaid           decimal.Decimal `db:"price_paid" json:"price_paid"`
	Paid                bool            `db:"paid" json:"paid"`
	PublishedAt         *time.Time      `db:"published_at" json:"published_at,omitempty"`
	ExpiresAt           *time.Time      `db:"expires_at" json:"expires_at,omitempty"`
	FixedPriceExpiresAt *time.Time      `db:"fixed_price_expires_at" json:"fixed_price_expires_at,omitempty"`
	SelectedPlatforms   pq.StringArray  `db:"selected_platforms" json:"selected_platforms"`
	Views               int             `db:"views" json:"views"`
	Clicks              int             `db:"clicks" json:"clicks"`
	Messages            int             `db:"messages" json:"messages"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
}

// GoverningExpiry returns the expiry that decides whether the ad is live.
func (a *Ad) GoverningExpiry() *time.Time {
	if a.IsFixedPrice {
		return a.FixedPriceExpiresAt
	}
	return a.ExpiresAt
}
