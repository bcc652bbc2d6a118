package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/lifecycle"
	"github.com/unclebandit/adboost-backend/internal/model"
	"github.com/unclebandit/adboost-backend/internal/pricing"
	"github.com/unclebandit/adboost-backend/internal/service"
)

var testNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type adFixture struct {
	svc       *service.AdService
	ads       *MockAdRepo
	platforms *MockPlatformRepo
	payments  *MockPaymentRepo
}

func newAdFixture() *adFixture {
	ads := NewMockAdRepo()
	ads.owners[1] = 42
	businesses := &MockBusinessRepo{businesses: map[int]*model.Business{
		1: {ID: 1, UserID: 42, BusinessName: "Mama Put", Email: "hello@mamaput.ng"},
	}}
	platforms := &MockPlatformRepo{}
	payments := &MockPaymentRepo{ads: ads}

	return &adFixture{
		svc: &service.AdService{
			AdRepo:       ads,
			PlatformRepo: platforms,
			BusinessRepo: businesses,
			PaymentRepo:  payments,
			Currency:     "NGN",
			Clock:        fixedClock(testNow),
		},
		ads:       ads,
		platforms: platforms,
		payments:  payments,
	}
}

func validAdInput() service.CreateAdInput {
	return service.CreateAdInput{
		UserID:            42,
		BusinessID:        1,
		Headline:          "Jollof Friday",
		BodyText:          "Two plates for the price of one.",
		CallToAction:      "Order now",
		TargetKeywords:    []string{"food", " ", "lagos"},
		Region:            "Lagos",
		SelectedPlatforms: []string{"facebook", "Instagram"},
		QuoteInput:        service.QuoteInput{DistanceKm: 700, Days: 1},
	}
}

func TestQuote(t *testing.T) {
	f := newAdFixture()

	q, err := f.svc.Quote(service.QuoteInput{DistanceKm: 250, Days: 2})
	require.NoError(t, err)
	assert.Equal(t, "14.50", q.Amount.StringFixed(2))
	assert.Equal(t, testNow.AddDate(0, 0, 2), q.ExpiresAt)

	_, err = f.svc.Quote(service.QuoteInput{DistanceKm: -1})
	assert.True(t, appErrors.IsInvalidInput(err))

	_, err = f.svc.Quote(service.QuoteInput{DistanceKm: 10, PricingMode: "auction"})
	assert.True(t, appErrors.IsInvalidInput(err))
}

func TestCreateAdStandard(t *testing.T) {
	f := newAdFixture()

	res, err := f.svc.CreateAd(context.Background(), validAdInput())
	require.NoError(t, err)

	ad := res.Ad
	assert.NotZero(t, ad.ID)
	assert.False(t, ad.Paid)
	assert.False(t, ad.IsFixedPrice)
	assert.Nil(t, ad.PublishedAt)
	assert.True(t, decimal.RequireFromString("5.07").Equal(ad.PricePaid))
	require.NotNil(t, ad.ExpiresAt)
	assert.Equal(t, testNow.AddDate(0, 0, 1), *ad.ExpiresAt)
	assert.Nil(t, ad.FixedPriceExpiresAt)
	assert.Equal(t, []string{"food", "lagos"}, []string(ad.TargetKeywords))
	assert.Equal(t, []string{"Facebook", "Instagram"}, []string(ad.SelectedPlatforms))

	p := res.Payment
	assert.Equal(t, ad.ID, p.AdID)
	assert.Equal(t, 42, p.UserID)
	assert.Equal(t, model.PaymentPending, p.Status)
	assert.Equal(t, "NGN", p.Currency)
	assert.Equal(t, "paystack", p.PaymentMethod)
	assert.Equal(t, "5.07", p.Amount.StringFixed(2))
}

func TestCreateAdFixed(t *testing.T) {
	f := newAdFixture()

	in := validAdInput()
	in.QuoteInput = service.QuoteInput{DistanceKm: 9000, Days: 12, PricingMode: pricing.ModeFixed, FixedPrice: 3}
	res, err := f.svc.CreateAd(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, res.Ad.IsFixedPrice)
	assert.Nil(t, res.Ad.ExpiresAt)
	require.NotNil(t, res.Ad.FixedPriceExpiresAt)
	assert.Equal(t, testNow.AddDate(0, 0, pricing.FixedDurationDays), *res.Ad.FixedPriceExpiresAt)
	assert.Equal(t, "3.00", res.Payment.Amount.StringFixed(2))
	assert.Equal(t, pricing.FixedDurationDays, res.Quote.Days)
}

func TestCreateAdRejectsBadInputWithoutWriting(t *testing.T) {
	cases := map[string]func(*service.CreateAdInput){
		"unknown platform":  func(in *service.CreateAdInput) { in.SelectedPlatforms = []string{"Myspace"} },
		"no platforms":      func(in *service.CreateAdInput) { in.SelectedPlatforms = nil },
		"missing headline":  func(in *service.CreateAdInput) { in.Headline = "" },
		"too many days":     func(in *service.CreateAdInput) { in.Days = 31 },
		"negative distance": func(in *service.CreateAdInput) { in.DistanceKm = -3 },
		"foreign business":  func(in *service.CreateAdInput) { in.UserID = 7 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newAdFixture()
			in := validAdInput()
			mutate(&in)

			_, err := f.svc.CreateAd(context.Background(), in)
			require.Error(t, err)
			assert.True(t, appErrors.IsInvalidInput(err), "got %v", err)
			assert.Empty(t, f.ads.ads)
			assert.Empty(t, f.payments.payments)
		})
	}
}

func TestCreateAdStoresNothingWhenPaymentFails(t *testing.T) {
	f := newAdFixture()
	f.payments.createErr = errors.New("connection reset")

	_, err := f.svc.CreateAd(context.Background(), validAdInput())
	require.Error(t, err)
	assert.Empty(t, f.ads.ads)
	assert.Empty(t, f.payments.payments)
}

func TestCreateAdUnknownBusiness(t *testing.T) {
	f := newAdFixture()
	in := validAdInput()
	in.BusinessID = 99

	_, err := f.svc.CreateAd(context.Background(), in)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestGetAdDetailsDerivesStatusAndSummary(t *testing.T) {
	f := newAdFixture()
	f.ads.Put(&model.Ad{ID: 5, BusinessID: 1, Paid: true, ExpiresAt: timePtr(testNow.Add(time.Hour))})
	f.platforms.entries = []model.AdPlatform{
		{AdID: 5, PlatformName: "Twitter", ReachCount: 700, Impressions: 1000, Clicks: 50, EngagementRate: 0.02},
		{AdID: 5, PlatformName: "Facebook", ReachCount: 1800, Impressions: 3000, Clicks: 150, EngagementRate: 0.04},
		{AdID: 6, PlatformName: "Facebook", ReachCount: 10, Impressions: 10, Clicks: 1},
	}

	d, err := f.svc.GetAdDetails(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Active, d.Status)
	assert.Len(t, d.Platforms, 2)
	assert.Equal(t, 2500, d.Summary.TotalReach)
	assert.Equal(t, 4000, d.Summary.TotalImpressions)
	assert.InDelta(t, 0.03, d.Summary.AverageEngagementRate, 1e-9)
	assert.Equal(t, "Facebook", d.Summary.Breakdown[0].Platform)
	assert.InDelta(t, 75.0, d.Summary.Breakdown[0].ImpressionShare, 1e-9)

	_, err = f.svc.GetAdDetails(context.Background(), 404)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestGetAdDetailsExpiredAtBoundary(t *testing.T) {
	f := newAdFixture()
	f.ads.Put(&model.Ad{ID: 1, Paid: true, IsFixedPrice: true, FixedPriceExpiresAt: timePtr(testNow)})

	d, err := f.svc.GetAdDetails(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.ExpiredFixed, d.Status)
	assert.Equal(t, 0, d.Summary.PlatformCount)
}

func TestListLivePaginates(t *testing.T) {
	f := newAdFixture()
	for i := 1; i <= 5; i++ {
		f.ads.Put(&model.Ad{ID: i, Paid: true, Region: "Lagos", ExpiresAt: timePtr(testNow.AddDate(0, 0, 1))})
	}
	f.ads.Put(&model.Ad{ID: 6, Paid: false, ExpiresAt: timePtr(testNow.AddDate(0, 0, 1))})
	f.ads.Put(&model.Ad{ID: 7, Paid: true, ExpiresAt: timePtr(testNow.Add(-time.Minute))})

	page1, pagination, err := f.svc.ListLive(context.Background(), 1, 2, "")
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, 5, pagination["total_count"])
	assert.Equal(t, 3, pagination["total_pages"])
	assert.Equal(t, 5, page1[0].ID)
	assert.Equal(t, lifecycle.Active, page1[0].Status)

	page3, _, err := f.svc.ListLive(context.Background(), 3, 2, "")
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	none, _, err := f.svc.ListLive(context.Background(), 1, 20, "Abuja")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListByUserIncludesEveryStatus(t *testing.T) {
	f := newAdFixture()
	f.ads.Put(&model.Ad{ID: 1, BusinessID: 1})
	f.ads.Put(&model.Ad{ID: 2, BusinessID: 1, Paid: true, ExpiresAt: timePtr(testNow.AddDate(0, 0, 1))})
	f.ads.Put(&model.Ad{ID: 3, BusinessID: 1, Paid: true, ExpiresAt: timePtr(testNow.AddDate(0, 0, -1))})
	f.ads.Put(&model.Ad{ID: 4, BusinessID: 2, Paid: true})

	views, err := f.svc.ListByUser(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, views, 3)

	got := map[int]lifecycle.Status{}
	for _, v := range views {
		got[v.ID] = v.Status
	}
	assert.Equal(t, map[int]lifecycle.Status{
		1: lifecycle.Unpaid,
		2: lifecycle.Active,
		3: lifecycle.Expired,
	}, got)
}
