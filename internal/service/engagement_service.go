package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/repository"
)

// Engagement kinds accepted by Track.
const (
	EngagementView    = "view"
	EngagementClick   = "click"
	EngagementMessage = "message"
)

var engagementCounters = map[string]string{
	EngagementView:    repository.CounterViews,
	EngagementClick:   repository.CounterClicks,
	EngagementMessage: repository.CounterMessages,
}

type EngagementService struct {
	AdRepo repository.AdRepositoryInterface
}

// Track bumps the ad counter matching kind.
func (s *EngagementService) Track(ctx context.Context, adID int, kind string) error {
	counter, ok := engagementCounters[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return appErrors.NewInvalidInput("type", "must be one of view click message")
	}
	if err := s.AdRepo.IncrementCounter(ctx, adID, counter); err != nil {
		return err
	}
	zap.L().Debug("engagement tracked", zap.Int("ad_id", adID), zap.String("type", kind))
	return nil
}
