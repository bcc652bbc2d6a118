package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/unclebandit/adboost-backend/internal/model"
)

// PlatformPublication is one platform entry and its first analytics snapshot.
type PlatformPublication struct {
	Entry     *model.AdPlatform
	Analytics model.PlatformAnalytics
}

type AdPlatformRepositoryInterface interface {
	ListByAd(ctx context.Context, adID int) ([]model.AdPlatform, error)
	CountByAd(ctx context.Context, adID int) (int, error)
	// CreatePublications inserts entries that do not exist yet and returns
	// how many were inserted. Existing (ad, platform) pairs are left as is.
	CreatePublications(ctx context.Context, pubs []PlatformPublication) (int, error)
}

type AdPlatformRepository struct {
	DB *sqlx.DB
}

func (r *AdPlatformRepository) ListByAd(ctx context.Context, adID int) ([]model.AdPlatform, error) {
	query := `
		SELECT id, ad_id, platform_name, status, reach_count, impressions, clicks, engagement_rate,
			platform_post_id, created_at
		FROM ad_platforms
		WHERE ad_id=$1
		ORDER BY reach_count DESC, id ASC
	`
	entries := []model.AdPlatform{}
	if err := r.DB.SelectContext(ctx, &entries, query, adID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *AdPlatformRepository) CountByAd(ctx context.Context, adID int) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM ad_platforms WHERE ad_id=$1`, adID)
	return n, err
}

func (r *AdPlatformRepository) CreatePublications(ctx context.Context, pubs []PlatformPublication) (int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, pub := range pubs {
		e := pub.Entry
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO ad_platforms (ad_id, platform_name, status, reach_count, impressions, clicks,
				engagement_rate, platform_post_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (ad_id, platform_name) DO NOTHING
			RETURNING id`,
			e.AdID, e.PlatformName, e.Status, e.ReachCount, e.Impressions, e.Clicks,
			e.EngagementRate, e.PlatformPostID, e.CreatedAt,
		).Scan(&e.ID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return 0, err
		}

		a := pub.Analytics
		_, err = tx.ExecContext(ctx, `
			INSERT INTO platform_analytics (ad_platform_id, date, reach, impressions, clicks, engagement)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			e.ID, a.Date, a.Reach, a.Impressions, a.Clicks, a.Engagement,
		)
		if err != nil {
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

var _ AdPlatformRepositoryInterface = (*AdPlatformRepository)(nil)
