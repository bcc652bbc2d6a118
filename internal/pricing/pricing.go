// Package pricing computes what a merchant pays before an ad can publish.
//
// Distance tiers (boundaries belong to the upper tier):
//
//	distance <  200 km          4.00
//	200 km <= distance < 600 km 5.00
//	distance >= 600 km          5.00 + floor((distance-600)/100) * 0.07
//
// Prices are float64 at full precision; round with Money only when the value
// is persisted or shown.
package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
)

const (
	NearTierMaxKm = 200.0
	NearTierPrice = 4.00

	MidTierMaxKm = 600.0
	MidTierPrice = 5.00

	FarStepKm    = 100.0
	FarStepPrice = 0.07

	// DefaultGrowthRate is the daily compounding rate of a standard campaign.
	DefaultGrowthRate = 0.9

	// MaxDays caps a standard campaign's run.
	MaxDays = 30

	// FixedDurationDays is the run length of every fixed-price campaign.
	FixedDurationDays = 4
)

type Mode string

const (
	ModeStandard Mode = "standard"
	ModeFixed    Mode = "fixed"
)

// BasePrice returns the per-day price for a targeting radius.
func BasePrice(distanceKm float64) (float64, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return 0, appErrors.NewInvalidInput("distance_km", "must be a finite number")
	}
	if distanceKm < 0 {
		return 0, appErrors.NewInvalidInput("distance_km", "must not be negative")
	}

	switch {
	case distanceKm < NearTierMaxKm:
		return NearTierPrice, nil
	case distanceKm < MidTierMaxKm:
		return MidTierPrice, nil
	default:
		steps := math.Floor((distanceKm - MidTierMaxKm) / FarStepKm)
		return MidTierPrice + steps*FarStepPrice, nil
	}
}

// FixedPrice accepts the merchant-chosen amount of a fixed-price campaign.
func FixedPrice(amount float64) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, appErrors.NewInvalidInput("fixed_price", "must be a finite number")
	}
	if amount <= 0 {
		return 0, appErrors.NewInvalidInput("fixed_price", "must be positive")
	}
	return amount, nil
}

// TotalPrice spreads basePrice over a run of days. Each day after the first
// costs the previous day's price times (1 + growthRate). With basePrice 5 and
// growthRate 0.9 the day prices are 5, 9.5, 18.05, ...
func TotalPrice(basePrice float64, days int, growthRate float64) (float64, error) {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) || basePrice <= 0 {
		return 0, appErrors.NewInvalidInput("base_price", "must be a positive finite number")
	}
	if days < 1 {
		return 0, appErrors.NewInvalidInput("days", "must be at least 1")
	}
	if days > MaxDays {
		return 0, appErrors.NewInvalidInput("days", "must not exceed 30")
	}
	if math.IsNaN(growthRate) || growthRate < 0 || growthRate >= 1 {
		return 0, appErrors.NewInvalidInput("growth_rate", "must be in [0,1)")
	}

	total := basePrice
	current := basePrice
	for day := 2; day <= days; day++ {
		current *= 1 + growthRate
		total += current
	}
	return total, nil
}

// Money rounds an amount to cents for persistence and display.
func Money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

type QuoteRequest struct {
	DistanceKm float64
	Days       int
	Mode       Mode
	// FixedAmount is only read in ModeFixed.
	FixedAmount float64
}

type QuoteResult struct {
	Mode Mode `json:"pricing_mode"`
	// Exact keeps full precision; Amount is what gets charged.
	Exact  float64         `json:"exact_amount"`
	Amount decimal.Decimal `json:"amount"`
	Days   int             `json:"days"`
	// ExpiresAt goes to ads.expires_at in standard mode and to
	// ads.fixed_price_expires_at in fixed mode.
	ExpiresAt time.Time `json:"expires_at"`
}

// Quote prices a campaign starting at now.
func Quote(req QuoteRequest, now time.Time) (*QuoteResult, error) {
	base, err := BasePrice(req.DistanceKm)
	if err != nil {
		return nil, err
	}

	switch req.Mode {
	case ModeFixed:
		amount, err := FixedPrice(req.FixedAmount)
		if err != nil {
			return nil, err
		}
		return &QuoteResult{
			Mode:      ModeFixed,
			Exact:     amount,
			Amount:    Money(amount),
			Days:      FixedDurationDays,
			ExpiresAt: now.AddDate(0, 0, FixedDurationDays),
		}, nil

	case ModeStandard, "":
		days := req.Days
		if days == 0 {
			days = 1
		}
		total, err := TotalPrice(base, days, DefaultGrowthRate)
		if err != nil {
			return nil, err
		}
		return &QuoteResult{
			Mode:      ModeStandard,
			Exact:     total,
			Amount:    Money(total),
			Days:      days,
			ExpiresAt: now.AddDate(0, 0, days),
		}, nil

	default:
		return nil, appErrors.NewInvalidInput("pricing_mode", "must be standard or fixed")
	}
}
