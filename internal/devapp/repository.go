// AngelaMos | 2026
// repository.go

package devapp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taremwastudios/billboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	Approve(ctx context.Context, db core.DBTX, id string) (bool, error)
	ListPending(ctx context.Context) ([]PendingApplication, error)
	HasPendingForUser(ctx context.Context, userID string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO dev_applications (id, user_id, motivation, cert_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &a.CreatedAt, query,
		a.ID, a.UserID, a.Motivation, a.CertURL, a.Status,
	)
	if err != nil {
		return fmt.Errorf("create dev application: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Application, error) {
	var a Application
	query := `SELECT * FROM dev_applications WHERE id = $1`

	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get dev application: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get dev application: %w", err)
	}

	return &a, nil
}

// Approve reports whether this call performed the transition. A second
// approval of the same application is a no-op.
func (r *repository) Approve(ctx context.Context, db core.DBTX, id string) (bool, error) {
	query := `
		UPDATE dev_applications
		SET status = 'approved', reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("approve dev application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("approve dev application rows: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) ListPending(ctx context.Context) ([]PendingApplication, error) {
	query := `
		SELECT
			a.id, a.user_id, a.motivation, a.cert_url, a.created_at,
			u.username, u.email
		FROM dev_applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.status = 'pending'
		ORDER BY a.created_at ASC`

	apps := []PendingApplication{}
	if err := r.db.SelectContext(ctx, &apps, query); err != nil {
		return nil, fmt.Errorf("list pending dev applications: %w", err)
	}

	return apps, nil
}

func (r *repository) HasPendingForUser(ctx context.Context, userID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM dev_applications
			WHERE user_id = $1 AND status = 'pending'
		)`

	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("check pending dev application: %w", err)
	}

	return exists, nil
}
