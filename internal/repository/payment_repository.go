package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/model"
)

type PaymentRepositoryInterface interface {
	Create(ctx context.Context, p *model.Payment) error
	GetByID(ctx context.Context, id int) (*model.Payment, error)
	GetByReference(ctx context.Context, reference string) (*model.Payment, error)
	MarkInitialized(ctx context.Context, id int, reference, accessCode string) error
	MarkFailed(ctx context.Context, id int) error
	// CompleteAndPublish marks the payment completed and the ad paid and
	// published in one transaction.
	CompleteAndPublish(ctx context.Context, paymentID, adID int, now time.Time) error
	// CreateWithAd stores a new ad and its pending payment in one transaction.
	CreateWithAd(ctx context.Context, ad *model.Ad, p *model.Payment) error
}

type PaymentRepository struct {
	DB *sqlx.DB
}

const paymentColumns = `id, user_id, ad_id, amount, currency, region, status, payment_method,
	gateway_reference, gateway_access_code, created_at, updated_at`

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	return insertPayment(ctx, r.DB, p)
}

func (r *PaymentRepository) CreateWithAd(ctx context.Context, ad *model.Ad, p *model.Payment) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertAd(ctx, tx, ad); err != nil {
		return fmt.Errorf("insert ad: %w", err)
	}
	p.AdID = ad.ID
	if err := insertPayment(ctx, tx, p); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return tx.Commit()
}

func insertPayment(ctx context.Context, q sqlx.QueryerContext, p *model.Payment) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	query := `
		INSERT INTO payments (user_id, ad_id, amount, currency, region, status, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return q.QueryRowxContext(ctx, query,
		p.UserID, p.AdID, p.Amount, p.Currency, p.Region, p.Status, p.PaymentMethod, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int) (*model.Payment, error) {
	var p model.Payment
	err := r.DB.GetContext(ctx, &p, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewPaymentNotFound(strconv.Itoa(id))
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	var p model.Payment
	err := r.DB.GetContext(ctx, &p, `SELECT `+paymentColumns+` FROM payments WHERE gateway_reference=$1`, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewPaymentNotFound(reference)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) MarkInitialized(ctx context.Context, id int, reference, accessCode string) error {
	query := `
		UPDATE payments
		SET gateway_reference=$1, gateway_access_code=$2, status=$3, updated_at=NOW()
		WHERE id=$4 AND status IN ($5, $3)
	`
	res, err := r.DB.ExecContext(ctx, query, reference, accessCode, model.PaymentInitialized, id, model.PaymentPending)
	if err != nil {
		return err
	}
	return r.requireRow(ctx, res, id)
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, id int) error {
	query := `UPDATE payments SET status=$1, updated_at=NOW() WHERE id=$2 AND status <> $3`
	res, err := r.DB.ExecContext(ctx, query, model.PaymentFailed, id, model.PaymentCompleted)
	if err != nil {
		return err
	}
	return r.requireRow(ctx, res, id)
}

func (r *PaymentRepository) CompleteAndPublish(ctx context.Context, paymentID, adID int, now time.Time) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET status=$1, updated_at=$2 WHERE id=$3 AND status <> $1`,
		model.PaymentCompleted, now, paymentID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return appErrors.NewPaymentAlreadyCompleted(paymentID)
	}

	// published_at is written exactly once.
	res, err = tx.ExecContext(ctx,
		`UPDATE ads SET paid=TRUE, price_paid=(SELECT amount FROM payments WHERE id=$1), published_at=$2
		 WHERE id=$3 AND published_at IS NULL`,
		paymentID, now, adID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return appErrors.NewAlreadyPublished(adID)
	}

	return tx.Commit()
}

func (r *PaymentRepository) requireRow(ctx context.Context, res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status == model.PaymentCompleted {
		return appErrors.NewPaymentAlreadyCompleted(p.ID)
	}
	return appErrors.NewInvalidInput("payment", "payment is "+p.Status)
}

var _ PaymentRepositoryInterface = (*PaymentRepository)(nil)
