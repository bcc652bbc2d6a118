package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/unclebandit/adboost-backend/internal/model"
)

type AnnouncementRepositoryInterface interface {
	Create(ctx context.Context, a *model.Announcement) error
	ListPublished(ctx context.Context) ([]model.Announcement, error)
}

type AnnouncementRepository struct {
	DB *sqlx.DB
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	a.CreatedAt = time.Now()
	query := `
		INSERT INTO announcements (author_id, title, content, priority, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		a.AuthorID, a.Title, a.Content, a.Priority, a.IsPublished, a.CreatedAt,
	).Scan(&a.ID)
}

func (r *AnnouncementRepository) ListPublished(ctx context.Context) ([]model.Announcement, error) {
	out := []model.Announcement{}
	err := r.DB.SelectContext(ctx, &out, `
		SELECT id, author_id, title, content, priority, is_published, created_at, updated_at
		FROM announcements
		WHERE is_published = TRUE
		ORDER BY priority DESC, created_at DESC`)
	return out, err
}

var _ AnnouncementRepositoryInterface = (*AnnouncementRepository)(nil)
