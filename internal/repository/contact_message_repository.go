package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/model"
)

type ContactMessageRepositoryInterface interface {
	// Create stores the message and bumps the ad's message counter.
	Create(ctx context.Context, msg *model.ContactMessage) error
	ListByAd(ctx context.Context, adID int) ([]model.ContactMessage, error)
}

type ContactMessageRepository struct {
	DB *sqlx.DB
}

func (r *ContactMessageRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	msg.CreatedAt = time.Now()

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO contact_messages (ad_id, sender_name, sender_email, sender_phone, message, platform, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		msg.AdID, msg.SenderName, msg.SenderEmail, msg.SenderPhone, msg.Message, msg.Platform, msg.CreatedAt,
	).Scan(&msg.ID)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `UPDATE ads SET messages = COALESCE(messages, 0) + 1 WHERE id=$1`, msg.AdID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return appErrors.NewAdNotFound(msg.AdID)
	}

	return tx.Commit()
}

func (r *ContactMessageRepository) ListByAd(ctx context.Context, adID int) ([]model.ContactMessage, error) {
	msgs := []model.ContactMessage{}
	err := r.DB.SelectContext(ctx, &msgs, `
		SELECT id, ad_id, sender_name, sender_email, sender_phone, message, platform, created_at
		FROM contact_messages WHERE ad_id=$1 ORDER BY created_at DESC`, adID)
	return msgs, err
}

var _ ContactMessageRepositoryInterface = (*ContactMessageRepository)(nil)
