package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/model"
)

// Engagement counters that can be incremented on an ad.
const (
	CounterViews    = "views"
	CounterClicks   = "clicks"
	CounterMessages = "messages"
)

type AdRepositoryInterface interface {
	Create(ctx context.Context, ad *model.Ad) error
	GetByID(ctx context.Context, id int) (*model.Ad, error)
	ListLive(ctx context.Context, offset, limit int, region string, now time.Time) ([]*model.Ad, int, error)
	ListByUser(ctx context.Context, userID int) ([]*model.Ad, error)
	IncrementCounter(ctx context.Context, id int, counter string) error
}

type AdRepository struct {
	DB *sqlx.DB
}

const adColumns = `id, business_id, ad_format, headline, body_text, call_to_action, target_keywords,
	region, distance_km, is_fixed_price, price_paid, paid, published_at, expires_at,
	fixed_price_expires_at, selected_platforms, views, clicks, messages, created_at`

func (r *AdRepository) Create(ctx context.Context, ad *model.Ad) error {
	return insertAd(ctx, r.DB, ad)
}

func insertAd(ctx context.Context, q sqlx.QueryerContext, ad *model.Ad) error {
	ad.CreatedAt = time.Now()
	if ad.AdFormat == "" {
		ad.AdFormat = "text"
	}
	if ad.TargetKeywords == nil {
		ad.TargetKeywords = pq.StringArray{}
	}
	query := `
		INSERT INTO ads (business_id, ad_format, headline, body_text, call_to_action, target_keywords,
			region, distance_km, is_fixed_price, price_paid, paid, expires_at, fixed_price_expires_at,
			selected_platforms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	return q.QueryRowxContext(ctx, query,
		ad.BusinessID, ad.AdFormat, ad.Headline, ad.BodyText, ad.CallToAction, ad.TargetKeywords,
		ad.Region, ad.DistanceKm, ad.IsFixedPrice, ad.PricePaid, ad.Paid, ad.ExpiresAt, ad.FixedPriceExpiresAt,
		ad.SelectedPlatforms, ad.CreatedAt,
	).Scan(&ad.ID)
}

func (r *AdRepository) GetByID(ctx context.Context, id int) (*model.Ad, error) {
	var ad model.Ad
	err := r.DB.GetContext(ctx, &ad, `SELECT `+adColumns+` FROM ads WHERE id=$1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewAdNotFound(id)
		}
		return nil, err
	}
	return &ad, nil
}

// ListLive returns paid ads whose governing expiry is after now, newest first.
func (r *AdRepository) ListLive(ctx context.Context, offset, limit int, region string, now time.Time) ([]*model.Ad, int, error) {
	where := ` WHERE paid = TRUE
		AND ((is_fixed_price = FALSE AND expires_at > $1) OR (is_fixed_price = TRUE AND fixed_price_expires_at > $1))`
	args := []interface{}{now}
	argPos := 2

	if region != "" {
		where += fmt.Sprintf(" AND region ILIKE $%d", argPos)
		args = append(args, "%"+region+"%")
		argPos++
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM ads`+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + adColumns + ` FROM ads` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	ads := []*model.Ad{}
	if err := r.DB.SelectContext(ctx, &ads, query, args...); err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// ListByUser returns every ad of every business the user owns.
func (r *AdRepository) ListByUser(ctx context.Context, userID int) ([]*model.Ad, error) {
	query := `
		SELECT a.id, a.business_id, a.ad_format, a.headline, a.body_text, a.call_to_action, a.target_keywords,
			a.region, a.distance_km, a.is_fixed_price, a.price_paid, a.paid, a.published_at, a.expires_at,
			a.fixed_price_expires_at, a.selected_platforms, a.views, a.clicks, a.messages, a.created_at
		FROM ads a
		JOIN businesses b ON b.id = a.business_id
		WHERE b.user_id = $1
		ORDER BY a.created_at DESC
	`
	ads := []*model.Ad{}
	if err := r.DB.SelectContext(ctx, &ads, query, userID); err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *AdRepository) IncrementCounter(ctx context.Context, id int, counter string) error {
	switch counter {
	case CounterViews, CounterClicks, CounterMessages:
	default:
		return appErrors.NewInvalidInput("type", "unknown engagement counter "+counter)
	}

	// counter is one of the whitelisted column names above.
	query := fmt.Sprintf(`UPDATE ads SET %[1]s = COALESCE(%[1]s, 0) + 1 WHERE id=$1`, counter)
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewAdNotFound(id)
	}
	return nil
}

var _ AdRepositoryInterface = (*AdRepository)(nil)
