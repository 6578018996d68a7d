// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taremwastudios/billboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	MarkEmailVerified(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id string, bio, fullName, phone *string) error
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
	UpdateBadge(ctx context.Context, id, badge string) error
	UpdateBadgeIn(ctx context.Context, db core.DBTX, id, badge string) error
	SetMuted(ctx context.Context, username string, muted bool) (*User, error)
	IncrementTokenVersion(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	CountActive(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (
			id, username, email, password_hash, phone, full_name,
			home_address, bio, role, badge, verification_code
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, u, query,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Phone, u.FullName,
		u.HomeAddress, u.Bio, u.Role, u.Badge, u.VerificationCode,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	query := `SELECT * FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get user by id: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &u, nil
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	query := `SELECT * FROM users WHERE username = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get user by username: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	query := `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &u, nil
}

// MarkEmailVerified flips the flag at most once. Zero affected rows
// means a concurrent submission already won; verification reports
// success either way.
func (r *repository) MarkEmailVerified(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET is_email_verified = true, updated_at = NOW()
		WHERE id = $1 AND is_email_verified = false AND deleted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}

	return nil
}

func (r *repository) UpdateProfile(ctx context.Context, id string, bio, fullName, phone *string) error {
	query := `
		UPDATE users
		SET bio = COALESCE($2, bio),
		    full_name = COALESCE($3, full_name),
		    phone = COALESCE($4, phone),
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, bio, fullName, phone)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	query := `
		UPDATE users
		SET avatar_url = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, avatarURL)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update avatar rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update avatar: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdateBadge(ctx context.Context, id, badge string) error {
	return r.UpdateBadgeIn(ctx, r.db, id, badge)
}

// UpdateBadgeIn takes an explicit executor so badge grants can ride in
// the payment completion transaction.
func (r *repository) UpdateBadgeIn(ctx context.Context, db core.DBTX, id, badge string) error {
	query := `
		UPDATE users
		SET badge = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := db.ExecContext(ctx, query, id, badge)
	if err != nil {
		return fmt.Errorf("update badge: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update badge rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update badge: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetMuted(ctx context.Context, username string, muted bool) (*User, error) {
	var u User
	query := `
		UPDATE users
		SET is_muted = $2, updated_at = NOW()
		WHERE username = $1 AND deleted_at IS NULL
		RETURNING *`

	err := r.db.GetContext(ctx, &u, query, username, muted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("set muted: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("set muted: %w", err)
	}

	return &u, nil
}

func (r *repository) IncrementTokenVersion(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment token version rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
