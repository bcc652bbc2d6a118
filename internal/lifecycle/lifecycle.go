// Package lifecycle derives an ad's status from its stored fields and the
// current time. Status is never persisted.
package lifecycle

import (
	"time"

	"github.com/unclebandit/adboost-backend/internal/model"
)

type Status string

const (
	Unpaid       Status = "Unpaid"
	Active       Status = "Active"
	ActiveFixed  Status = "Active (Fixed)"
	Expired      Status = "Expired"
	ExpiredFixed Status = "Expired (Fixed)"
)

// Derive returns the ad's status at now. A paid ad whose governing expiry is
// missing is treated as expired.
func Derive(ad *model.Ad, now time.Time) Status {
	if !ad.Paid {
		return Unpaid
	}

	expiry := ad.GoverningExpiry()
	expired := expiry == nil || !now.Before(*expiry)

	switch {
	case ad.IsFixedPrice && expired:
		return ExpiredFixed
	case ad.IsFixedPrice:
		return ActiveFixed
	case expired:
		return Expired
	default:
		return Active
	}
}

func (s Status) IsLive() bool {
	return s == Active || s == ActiveFixed
}

func (s Status) IsExpired() bool {
	return s == Expired || s == ExpiredFixed
}
