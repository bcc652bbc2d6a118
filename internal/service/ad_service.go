package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/analytics"
	"github.com/unclebandit/adboost-backend/internal/lifecycle"
	"github.com/unclebandit/adboost-backend/internal/model"
	"github.com/unclebandit/adboost-backend/internal/pricing"
	"github.com/unclebandit/adboost-backend/internal/repository"
	"github.com/unclebandit/adboost-backend/internal/simulator"
	"github.com/unclebandit/adboost-backend/internal/validate"
)

const defaultPaymentMethod = "paystack"

type AdService struct {
	AdRepo       repository.AdRepositoryInterface
	PlatformRepo repository.AdPlatformRepositoryInterface
	BusinessRepo repository.BusinessRepositoryInterface
	PaymentRepo  repository.PaymentRepositoryInterface
	Currency     string
	Clock        Clock
}

type QuoteInput struct {
	DistanceKm  float64      `json:"distance_km" validate:"gte=0"`
	Days        int          `json:"days" validate:"gte=0"`
	PricingMode pricing.Mode `json:"pricing_mode" validate:"omitempty,oneof=standard fixed"`
	FixedPrice  float64      `json:"fixed_price"`
}

func (in QuoteInput) request() pricing.QuoteRequest {
	return pricing.QuoteRequest{
		DistanceKm:  in.DistanceKm,
		Days:        in.Days,
		Mode:        in.PricingMode,
		FixedAmount: in.FixedPrice,
	}
}

type CreateAdInput struct {
	UserID            int      `json:"user_id" validate:"required,gt=0"`
	BusinessID        int      `json:"business_id" validate:"required,gt=0"`
	AdFormat          string   `json:"ad_format"`
	Headline          string   `json:"headline" validate:"required,max=150"`
	BodyText          string   `json:"body_text" validate:"required"`
	CallToAction      string   `json:"call_to_action"`
	TargetKeywords    []string `json:"target_keywords"`
	Region            string   `json:"region" validate:"required"`
	SelectedPlatforms []string `json:"selected_platforms"`
	PaymentMethod     string   `json:"payment_method"`
	QuoteInput
}

type CreateAdResult struct {
	Ad      *model.Ad            `json:"ad"`
	Payment *model.Payment       `json:"payment"`
	Quote   *pricing.QuoteResult `json:"quote"`
}

// AdView is an ad with its status derived at read time.
type AdView struct {
	*model.Ad
	Status lifecycle.Status `json:"status"`
}

type AdDetails struct {
	AdView
	Platforms []model.AdPlatform `json:"platforms"`
	Summary   analytics.Summary  `json:"summary"`
}

func (s *AdService) Quote(in QuoteInput) (*pricing.QuoteResult, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return pricing.Quote(in.request(), s.Clock.now())
}

// CreateAd prices the ad, stores it unpaid and opens a pending payment for
// the quoted amount.
func (s *AdService) CreateAd(ctx context.Context, in CreateAdInput) (*CreateAdResult, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	platforms, err := simulator.ParsePlatforms(in.SelectedPlatforms)
	if err != nil {
		return nil, err
	}

	business, err := s.BusinessRepo.GetByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if business.UserID != in.UserID {
		return nil, appErrors.NewInvalidInput("business_id", "business does not belong to user")
	}

	now := s.Clock.now()
	quote, err := pricing.Quote(in.request(), now)
	if err != nil {
		return nil, err
	}

	ad := &model.Ad{
		BusinessID:        in.BusinessID,
		AdFormat:          in.AdFormat,
		Headline:          strings.TrimSpace(in.Headline),
		BodyText:          in.BodyText,
		CallToAction:      in.CallToAction,
		TargetKeywords:    cleanKeywords(in.TargetKeywords),
		Region:            in.Region,
		DistanceKm:        in.DistanceKm,
		IsFixedPrice:      quote.Mode == pricing.ModeFixed,
		PricePaid:         quote.Amount,
		SelectedPlatforms: platformNames(platforms),
	}
	expires := quote.ExpiresAt
	if ad.IsFixedPrice {
		ad.FixedPriceExpiresAt = &expires
	} else {
		ad.ExpiresAt = &expires
	}

	method := in.PaymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}
	payment := &model.Payment{
		UserID:        in.UserID,
		Amount:        quote.Amount,
		Currency:      s.Currency,
		Region:        in.Region,
		Status:        model.PaymentPending,
		PaymentMethod: method,
	}
	if err := s.PaymentRepo.CreateWithAd(ctx, ad, payment); err != nil {
		return nil, fmt.Errorf("create ad: %w", err)
	}

	zap.L().Info("ad created",
		zap.Int("ad_id", ad.ID),
		zap.Int("payment_id", payment.ID),
		zap.String("amount", quote.Amount.StringFixed(2)),
		zap.String("mode", string(quote.Mode)),
	)

	return &CreateAdResult{Ad: ad, Payment: payment, Quote: quote}, nil
}

func (s *AdService) GetAdDetails(ctx context.Context, id int) (*AdDetails, error) {
	ad, err := s.AdRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.PlatformRepo.ListByAd(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list platforms of ad %d: %w", id, err)
	}

	return &AdDetails{
		AdView:    AdView{Ad: ad, Status: lifecycle.Derive(ad, s.Clock.now())},
		Platforms: entries,
		Summary:   analytics.Aggregate(entries),
	}, nil
}

// PlatformBreakdown returns the ad's platform entries and their rollup.
func (s *AdService) PlatformBreakdown(ctx context.Context, id int) ([]model.AdPlatform, analytics.Summary, error) {
	if _, err := s.AdRepo.GetByID(ctx, id); err != nil {
		return nil, analytics.Summary{}, err
	}
	entries, err := s.PlatformRepo.ListByAd(ctx, id)
	if err != nil {
		return nil, analytics.Summary{}, fmt.Errorf("list platforms of ad %d: %w", id, err)
	}
	return entries, analytics.Aggregate(entries), nil
}

// ListLive pages through paid, unexpired ads.
func (s *AdService) ListLive(ctx context.Context, page, pageSize int, region string) ([]AdView, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	now := s.Clock.now()
	ads, total, err := s.AdRepo.ListLive(ctx, offset, pageSize, region, now)
	if err != nil {
		return nil, nil, err
	}

	views := make([]AdView, 0, len(ads))
	for _, ad := range ads {
		status := lifecycle.Derive(ad, now)
		if !status.IsLive() {
			continue
		}
		views = append(views, AdView{Ad: ad, Status: status})
	}

	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": (total + pageSize - 1) / pageSize,
	}
	return views, pagination, nil
}

// ListByUser returns the user's ads for the dashboard, expired and unpaid
// ones included.
func (s *AdService) ListByUser(ctx context.Context, userID int) ([]AdView, error) {
	ads, err := s.AdRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.now()
	views := make([]AdView, 0, len(ads))
	for _, ad := range ads {
		views = append(views, AdView{Ad: ad, Status: lifecycle.Derive(ad, now)})
	}
	return views, nil
}

func cleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func platformNames(ps []simulator.Platform) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}
