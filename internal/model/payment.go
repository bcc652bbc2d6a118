package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentPending     = "pending"
	PaymentInitialized = "initialized"
	PaymentCompleted   = "completed"
	PaymentFailed      = "failed"
)

type Payment struct {
	ID                int             `db:"id" json:"id"`
	UserID            int             `db:"user_id" json:"user_id"`
	AdID              int             `db:"ad_id" json:"ad_id"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	Currency          string          `db:"currency" json:"currency"`
	Region            string          `db:"region" json:"region"`
	Status            string          `db:"status" json:"status"` // pending, initialized, completed, failed
	PaymentMethod     string          `db:"payment_method" json:"payment_method"`
	GatewayReference  *string         `db:"gateway_reference" json:"gateway_reference,omitempty"`
	GatewayAccessCode *string         `db:"gateway_access_code" json:"-"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}
