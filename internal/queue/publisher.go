package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/model"
)

// PublishJob asks the publisher to push a paid ad to its platforms.
type PublishJob struct {
	AdID int `json:"ad_id"`
}

// AdPublisher is satisfied by service.PublishService.
type AdPublisher interface {
	Publish(ctx context.Context, adID int) ([]model.AdPlatform, error)
}

// publishTimeout bounds one delivery attempt.
const publishTimeout = 30 * time.Second

// StartAdPublishSubscriber wires publisher to topic. Jobs for ads that are
// already published or not paid are acknowledged without retry.
func StartAdPublishSubscriber(q Queue, topic string, publisher AdPublisher) error {
	err := q.Subscribe(topic, func(payload any) error {
		job, err := decodeJob(payload)
		if err != nil {
			zap.L().Warn("dropping malformed publish job", zap.Any("payload", payload), zap.Error(err))
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		entries, err := publisher.Publish(ctx, job.AdID)
		switch {
		case err == nil:
			zap.L().Info("ad published", zap.Int("ad_id", job.AdID), zap.Int("platforms", len(entries)))
			return nil
		case appErrors.IsConflict(err), appErrors.IsAdNotPaid(err), appErrors.IsNotFound(err), appErrors.IsInvalidInput(err):
			zap.L().Info("publish job skipped", zap.Int("ad_id", job.AdID), zap.Error(err))
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

func decodeJob(payload any) (PublishJob, error) {
	switch v := payload.(type) {
	case PublishJob:
		return v, nil
	case *PublishJob:
		if v == nil {
			return PublishJob{}, fmt.Errorf("nil job")
		}
		return *v, nil
	case []byte:
		var job PublishJob
		if err := json.Unmarshal(v, &job); err != nil {
			return PublishJob{}, err
		}
		if job.AdID <= 0 {
			return PublishJob{}, fmt.Errorf("missing ad_id")
		}
		return job, nil
	default:
		return PublishJob{}, fmt.Errorf("unexpected payload type %T", payload)
	}
}
