package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway is the payment provider. The real provider is out of scope; the
// server runs MockGateway.
type Gateway interface {
	Initialize(ctx context.Context, req GatewayRequest) (*GatewaySession, error)
	Verify(ctx context.Context, reference string) (*GatewayVerification, error)
}

type GatewayRequest struct {
	PaymentID int
	Email     string
	Amount    decimal.Decimal
	Currency  string
}

type GatewaySession struct {
	Reference        string `json:"reference"`
	AccessCode       string `json:"access_code"`
	AuthorizationURL string `json:"authorization_url"`
}

type GatewayVerification struct {
	Reference string
	Success   bool
	// Message explains a failure.
	Message string
}

// MockGateway approves every transaction unless its reference is listed in
// Declined.
type MockGateway struct {
	CallbackURL string
	Declined    map[string]bool
}

func (g *MockGateway) Initialize(ctx context.Context, req GatewayRequest) (*GatewaySession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ref := fmt.Sprintf("adboost_%d_%s", req.PaymentID, uuid.NewString())

	authURL := g.CallbackURL
	if u, err := url.Parse(g.CallbackURL); err == nil && g.CallbackURL != "" {
		q := u.Query()
		q.Set("reference", ref)
		u.RawQuery = q.Encode()
		authURL = u.String()
	}

	return &GatewaySession{
		Reference:        ref,
		AccessCode:       uuid.NewString(),
		AuthorizationURL: authURL,
	}, nil
}

func (g *MockGateway) Verify(ctx context.Context, reference string) (*GatewayVerification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.Declined[reference] {
		return &GatewayVerification{Reference: reference, Message: "declined"}, nil
	}
	return &GatewayVerification{Reference: reference, Success: true}, nil
}

var _ Gateway = (*MockGateway)(nil)
