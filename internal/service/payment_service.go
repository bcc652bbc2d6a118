package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/model"
	"github.com/unclebandit/adboost-backend/internal/queue"
	"github.com/unclebandit/adboost-backend/internal/repository"
	"github.com/unclebandit/adboost-backend/internal/validate"
)

type PaymentService struct {
	PaymentRepo  repository.PaymentRepositoryInterface
	Gateway      Gateway
	Queue        queue.Queue
	PublishTopic string
	Clock        Clock
}

type InitializeInput struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResult struct {
	Payment *model.Payment `json:"payment"`
	// Published is true when the ad went live on this call.
	Published bool `json:"published"`
	Message   string `json:"message,omitempty"`
}

// Initialize opens a gateway session for a pending payment.
func (s *PaymentService) Initialize(ctx context.Context, paymentID int, in InitializeInput) (*GatewaySession, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	p, err := s.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status == model.PaymentCompleted {
		return nil, appErrors.NewPaymentAlreadyCompleted(p.ID)
	}

	session, err := s.Gateway.Initialize(ctx, GatewayRequest{
		PaymentID: p.ID,
		Email:     in.Email,
		Amount:    p.Amount,
		Currency:  p.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize payment %d: %w", p.ID, err)
	}

	if err := s.PaymentRepo.MarkInitialized(ctx, p.ID, session.Reference, session.AccessCode); err != nil {
		return nil, err
	}

	zap.L().Info("payment initialized", zap.Int("payment_id", p.ID), zap.String("reference", session.Reference))
	return session, nil
}

// Verify confirms a payment with the gateway. On success the payment is
// completed and the ad becomes paid and published in one transaction, then a
// publish job is queued. Queue failures are logged; the payment stands.
func (s *PaymentService) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	if reference == "" {
		return nil, appErrors.NewInvalidInput("reference", "is required")
	}

	p, err := s.PaymentRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if p.Status == model.PaymentCompleted {
		return nil, appErrors.NewPaymentAlreadyCompleted(p.ID)
	}

	v, err := s.Gateway.Verify(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("verify payment %d: %w", p.ID, err)
	}
	if !v.Success {
		if err := s.PaymentRepo.MarkFailed(ctx, p.ID); err != nil {
			return nil, err
		}
		p.Status = model.PaymentFailed
		zap.L().Warn("payment declined", zap.Int("payment_id", p.ID), zap.String("reason", v.Message))
		return &VerifyResult{Payment: p, Message: v.Message}, nil
	}

	now := s.Clock.now()
	if err := s.PaymentRepo.CompleteAndPublish(ctx, p.ID, p.AdID, now); err != nil {
		return nil, err
	}
	p.Status = model.PaymentCompleted
	p.UpdatedAt = now

	if err := s.Queue.Publish(s.topic(), queue.PublishJob{AdID: p.AdID}); err != nil {
		zap.L().Error("failed to enqueue publish job", zap.Int("ad_id", p.AdID), zap.Error(err))
	}

	zap.L().Info("payment completed", zap.Int("payment_id", p.ID), zap.Int("ad_id", p.AdID))
	return &VerifyResult{Payment: p, Published: true}, nil
}

func (s *PaymentService) topic() string {
	if s.PublishTopic == "" {
		return queue.DefaultPublishTopic
	}
	return s.PublishTopic
}
