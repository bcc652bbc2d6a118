package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/model"
)

type BusinessRepositoryInterface interface {
	Create(ctx context.Context, b *model.Business) error
	GetByID(ctx context.Context, id int) (*model.Business, error)
	ListByUser(ctx context.Context, userID int) ([]model.Business, error)
}

type BusinessRepository struct {
	DB *sqlx.DB
}

const businessColumns = `id, user_id, business_name, business_description, email, phone_number, website_url,
	whatsapp_link, facebook_handle, instagram_handle, twitter_handle, linkedin_handle, tiktok_handle, created_at`

func (r *BusinessRepository) Create(ctx context.Context, b *model.Business) error {
	b.CreatedAt = time.Now()
	query := `
		INSERT INTO businesses (user_id, business_name, business_description, email, phone_number, website_url,
			whatsapp_link, facebook_handle, instagram_handle, twitter_handle, linkedin_handle, tiktok_handle, created_at)
		VALUES (:user_id, :business_name, :business_description, :email, :phone_number, :website_url,
			:whatsapp_link, :facebook_handle, :instagram_handle, :twitter_handle, :linkedin_handle, :tiktok_handle, :created_at)
		RETURNING id
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, b)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&b.ID)
	}
	return rows.Err()
}

func (r *BusinessRepository) GetByID(ctx context.Context, id int) (*model.Business, error) {
	var b model.Business
	err := r.DB.GetContext(ctx, &b, `SELECT `+businessColumns+` FROM businesses WHERE id=$1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewBusinessNotFound(id)
		}
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepository) ListByUser(ctx context.Context, userID int) ([]model.Business, error) {
	businesses := []model.Business{}
	err := r.DB.SelectContext(ctx, &businesses,
		`SELECT `+businessColumns+` FROM businesses WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	return businesses, err
}

var _ BusinessRepositoryInterface = (*BusinessRepository)(nil)
