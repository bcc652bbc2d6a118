package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unclebandit/adboost-backend/internal/lifecycle"
	"github.com/unclebandit/adboost-backend/internal/model"
)

func at(t time.Time) *time.Time { return &t }

func TestDerive(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ad   model.Ad
		want lifecycle.Status
	}{
		{
			name: "standard expired a second ago",
			ad:   model.Ad{Paid: true, ExpiresAt: at(now.Add(-time.Second))},
			want: lifecycle.Expired,
		},
		{
			name: "standard live for another hour",
			ad:   model.Ad{Paid: true, ExpiresAt: at(now.Add(time.Hour))},
			want: lifecycle.Active,
		},
		{
			name: "expiry equal to now is expired",
			ad:   model.Ad{Paid: true, ExpiresAt: at(now)},
			want: lifecycle.Expired,
		},
		{
			name: "unpaid with past expiry",
			ad:   model.Ad{Paid: false, ExpiresAt: at(now.Add(-time.Hour))},
			want: lifecycle.Unpaid,
		},
		{
			name: "unpaid with future expiry",
			ad:   model.Ad{Paid: false, ExpiresAt: at(now.Add(time.Hour))},
			want: lifecycle.Unpaid,
		},
		{
			name: "fixed ignores standard expiry",
			ad: model.Ad{
				Paid:                true,
				IsFixedPrice:        true,
				ExpiresAt:           at(now.Add(-48 * time.Hour)),
				FixedPriceExpiresAt: at(now.Add(time.Hour)),
			},
			want: lifecycle.ActiveFixed,
		},
		{
			name: "fixed expired",
			ad: model.Ad{
				Paid:                true,
				IsFixedPrice:        true,
				ExpiresAt:           at(now.Add(48 * time.Hour)),
				FixedPriceExpiresAt: at(now.Add(-time.Minute)),
			},
			want: lifecycle.ExpiredFixed,
		},
		{
			name: "paid without expiry",
			ad:   model.Ad{Paid: true},
			want: lifecycle.Expired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, lifecycle.Derive(&tc.ad, now))
		})
	}
}

func TestDeriveIsRecomputedPerCall(t *testing.T) {
	expiry := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	ad := &model.Ad{Paid: true, ExpiresAt: &expiry}

	assert.Equal(t, lifecycle.Active, lifecycle.Derive(ad, expiry.Add(-time.Nanosecond)))
	assert.Equal(t, lifecycle.Expired, lifecycle.Derive(ad, expiry))
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, lifecycle.Active.IsLive())
	assert.True(t, lifecycle.ActiveFixed.IsLive())
	assert.False(t, lifecycle.Unpaid.IsLive())
	assert.True(t, lifecycle.ExpiredFixed.IsExpired())
	assert.False(t, lifecycle.Active.IsExpired())
}
