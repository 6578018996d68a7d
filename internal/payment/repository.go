// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taremwastudios/billboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	Complete(ctx context.Context, db core.DBTX, id string) (bool, error)
	ListPending(ctx context.Context) ([]Payment, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO pending_payments (id, user_id, item, amount_cents, status, confirmation_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &p.CreatedAt, query,
		p.ID, p.UserID, p.Item, p.AmountCents, p.Status, p.ConfirmationHash,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	query := `SELECT * FROM pending_payments WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &p, nil
}

// Complete flips pending to completed and reports whether this call
// performed the transition. The status guard makes a second confirm a
// no-op instead of a double grant.
func (r *repository) Complete(ctx context.Context, db core.DBTX, id string) (bool, error) {
	query := `
		UPDATE pending_payments
		SET status = 'completed', completed_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("complete payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete payment rows: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) ListPending(ctx context.Context) ([]Payment, error) {
	query := `
		SELECT * FROM pending_payments
		WHERE status = 'pending'
		ORDER BY created_at ASC`

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("list pending payments: %w", err)
	}

	return payments, nil
}
