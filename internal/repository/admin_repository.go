package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/unclebandit/adboost-backend/internal/model"
)

type AdminRepositoryInterface interface {
	Stats(ctx context.Context) (*model.AdminStats, error)
}

type AdminRepository struct {
	DB *sqlx.DB
}

// Stats counts users as distinct business owners; accounts live in the
// external auth service.
func (r *AdminRepository) Stats(ctx context.Context) (*model.AdminStats, error) {
	var s model.AdminStats
	err := r.DB.GetContext(ctx, &s, `
		SELECT
			(SELECT COUNT(DISTINCT user_id) FROM businesses) AS total_users,
			(SELECT COUNT(*) FROM ads) AS total_ads,
			(SELECT COUNT(*) FROM ads WHERE paid = TRUE) AS paid_ads,
			(SELECT COUNT(*) FROM businesses) AS total_businesses,
			(SELECT COUNT(*) FROM contact_messages) AS total_messages`)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

var _ AdminRepositoryInterface = (*AdminRepository)(nil)
