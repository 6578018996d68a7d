// AngelaMos | 2026
// repository.go

package channel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taremwastudios/billboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, db core.DBTX, ch *Channel) error
	AddMember(ctx context.Context, db core.DBTX, channelID, userID string) error
	GetByID(ctx context.Context, id string) (*Channel, error)
	List(ctx context.Context) ([]Summary, error)
	IsMember(ctx context.Context, channelID, userID string) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Create takes an explicit executor so the channel insert and the owner
// membership insert can share one transaction.
func (r *repository) Create(ctx context.Context, db core.DBTX, ch *Channel) error {
	query := `
		INSERT INTO channels (id, name, description, owner_id, access_price_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := db.GetContext(ctx, &ch.CreatedAt, query,
		ch.ID, ch.Name, ch.Description, ch.OwnerID, ch.AccessPriceCents,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create channel: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create channel: %w", err)
	}

	return nil
}

// AddMember is idempotent: joining an already-joined channel is a no-op.
func (r *repository) AddMember(ctx context.Context, db core.DBTX, channelID, userID string) error {
	query := `
		INSERT INTO channel_memberships (channel_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (channel_id, user_id) DO NOTHING`

	if _, err := db.ExecContext(ctx, query, channelID, userID); err != nil {
		return fmt.Errorf("add channel member: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Channel, error) {
	var ch Channel
	query := `SELECT * FROM channels WHERE id = $1`

	err := r.db.GetContext(ctx, &ch, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get channel: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get channel: %w", err)
	}

	return &ch, nil
}

func (r *repository) List(ctx context.Context) ([]Summary, error) {
	query := `
		SELECT
			c.id, c.name, c.description, c.owner_id, c.access_price_cents,
			c.created_at,
			u.username AS owner_username,
			COUNT(m.user_id) AS member_count
		FROM channels c
		JOIN users u ON u.id = c.owner_id
		LEFT JOIN channel_memberships m ON m.channel_id = c.id
		GROUP BY c.id, u.username
		ORDER BY c.created_at DESC`

	summaries := []Summary{}
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	return summaries, nil
}

func (r *repository) IsMember(ctx context.Context, channelID, userID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM channel_memberships
			WHERE channel_id = $1 AND user_id = $2
		)`

	if err := r.db.GetContext(ctx, &exists, query, channelID, userID); err != nil {
		return false, fmt.Errorf("check channel membership: %w", err)
	}

	return exists, nil
}

func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM channels`

	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count channels: %w", err)
	}

	return count, nil
}
