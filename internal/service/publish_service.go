package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/model"
	"github.com/unclebandit/adboost-backend/internal/repository"
	"github.com/unclebandit/adboost-backend/internal/simulator"
)

// PublishService pushes a paid ad to its selected platforms. Nothing leaves
// the process: every platform's numbers come from the simulator.
type PublishService struct {
	AdRepo       repository.AdRepositoryInterface
	PlatformRepo repository.AdPlatformRepositoryInterface
	Simulator    *simulator.Simulator
	// PostID names the external post; defaults to "<platform>_<uuid>".
	PostID func(p simulator.Platform) string
	Clock  Clock
}

// Publish writes one platform entry and its first analytics snapshot per
// selected platform. Every platform is validated and simulated before
// anything is stored. An ad is published at most once.
func (s *PublishService) Publish(ctx context.Context, adID int) ([]model.AdPlatform, error) {
	ad, err := s.AdRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if !ad.Paid {
		return nil, appErrors.NewAdNotPaid(adID)
	}

	existing, err := s.PlatformRepo.CountByAd(ctx, adID)
	if err != nil {
		return nil, fmt.Errorf("count platforms of ad %d: %w", adID, err)
	}
	if existing > 0 {
		return nil, appErrors.NewAlreadyPublished(adID)
	}

	platforms, err := simulator.ParsePlatforms(ad.SelectedPlatforms)
	if err != nil {
		return nil, err
	}

	now := s.Clock.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	pubs := make([]repository.PlatformPublication, 0, len(platforms))
	for _, p := range platforms {
		m, err := s.Simulator.Simulate(p, ad.DistanceKm, len(ad.TargetKeywords))
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, repository.PlatformPublication{
			Entry: &model.AdPlatform{
				AdID:           adID,
				PlatformName:   string(p),
				Status:         model.PlatformStatusPublished,
				ReachCount:     m.Reach,
				Impressions:    m.Impressions,
				Clicks:         m.Clicks,
				EngagementRate: m.EngagementRate,
				PlatformPostID: s.postID(p),
				CreatedAt:      now,
			},
			Analytics: model.PlatformAnalytics{
				Date:        day,
				Reach:       m.Reach,
				Impressions: m.Impressions,
				Clicks:      m.Clicks,
				Engagement:  m.Engagements,
			},
		})
	}

	inserted, err := s.PlatformRepo.CreatePublications(ctx, pubs)
	if err != nil {
		return nil, fmt.Errorf("store publications of ad %d: %w", adID, err)
	}
	if inserted == 0 {
		// A concurrent publish won the race.
		return nil, appErrors.NewAlreadyPublished(adID)
	}

	entries := make([]model.AdPlatform, 0, len(pubs))
	for _, pub := range pubs {
		if pub.Entry.ID != 0 {
			entries = append(entries, *pub.Entry)
		}
	}

	zap.L().Info("ad pushed to platforms",
		zap.Int("ad_id", adID),
		zap.Int("platforms", len(entries)),
	)
	return entries, nil
}

func (s *PublishService) postID(p simulator.Platform) string {
	if s.PostID != nil {
		return s.PostID(p)
	}
	name := strings.ToLower(strings.ReplaceAll(string(p), " ", ""))
	return name + "_" + uuid.NewString()
}
