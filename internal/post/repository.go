// AngelaMos | 2026
// repository.go

package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taremwastudios/billboard/internal/core"
)

const feedColumns = `
	p.id, p.content, p.post_type, p.channel_id, p.media_url, p.media_type,
	p.author_id, p.created_at,
	u.username AS author_username,
	u.badge AS author_badge,
	u.avatar_url AS author_avatar_url`

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	SoftDelete(ctx context.Context, id int64) error
	WallFeed(ctx context.Context, limit int, afterID int64) ([]FeedItem, error)
	NewsFeed(ctx context.Context, limit int, afterID int64) ([]FeedItem, error)
	ChannelFeed(ctx context.Context, channelID string, limit int, afterID int64) ([]FeedItem, error)
	CountActive(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO posts (author_id, content, post_type, channel_id, media_url, media_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.GetContext(ctx, p, query,
		p.AuthorID, p.Content, p.PostType, p.ChannelID, p.MediaURL, p.MediaType,
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

// GetByID returns the post even when soft-deleted, so moderation
// actions on an already-deleted post stay idempotent.
func (r *repository) GetByID(ctx context.Context, id int64) (*Post, error) {
	var p Post
	query := `SELECT * FROM posts WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &p, nil
}

// SoftDelete is a no-op when the post is already deleted.
func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE posts
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	return nil
}

// WallFeed returns wall posts only: news and channel posts never leak
// into the public feed. afterID is an exclusive lower bound so clients
// can poll for posts newer than the last one they saw.
func (r *repository) WallFeed(ctx context.Context, limit int, afterID int64) ([]FeedItem, error) {
	query := `
		SELECT ` + feedColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.post_type = 'wall'
			AND p.deleted_at IS NULL
			AND p.id > $1
		ORDER BY p.id DESC
		LIMIT $2`

	items := []FeedItem{}
	if err := r.db.SelectContext(ctx, &items, query, afterID, limit); err != nil {
		return nil, fmt.Errorf("wall feed: %w", err)
	}

	return items, nil
}

func (r *repository) NewsFeed(ctx context.Context, limit int, afterID int64) ([]FeedItem, error) {
	query := `
		SELECT ` + feedColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.post_type = 'news'
			AND p.deleted_at IS NULL
			AND p.id > $1
		ORDER BY p.id DESC
		LIMIT $2`

	items := []FeedItem{}
	if err := r.db.SelectContext(ctx, &items, query, afterID, limit); err != nil {
		return nil, fmt.Errorf("news feed: %w", err)
	}

	return items, nil
}

func (r *repository) ChannelFeed(ctx context.Context, channelID string, limit int, afterID int64) ([]FeedItem, error) {
	query := `
		SELECT ` + feedColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.post_type = 'channel'
			AND p.channel_id = $1
			AND p.deleted_at IS NULL
			AND p.id > $2
		ORDER BY p.id DESC
		LIMIT $3`

	items := []FeedItem{}
	if err := r.db.SelectContext(ctx, &items, query, channelID, afterID, limit); err != nil {
		return nil, fmt.Errorf("channel feed: %w", err)
	}

	return items, nil
}

func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM posts WHERE deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}

	return count, nil
}
