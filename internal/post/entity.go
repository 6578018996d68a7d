// AngelaMos | 2026
// entity.go

package post

import (
	"time"
)

type Post struct {
	ID        int64      `db:"id"         json:"id"`
	AuthorID  string     `db:"author_id"  json:"author_id"`
	Content   string     `db:"content"    json:"content"`
	PostType  string     `db:"post_type"  json:"post_type"`
	ChannelID *string    `db:"channel_id" json:"channel_id,omitempty"`
	MediaURL  *string    `db:"media_url"  json:"media_url,omitempty"`
	MediaType *string    `db:"media_type" json:"media_type,omitempty"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

func (p *Post) IsDeleted() bool {
	return p.DeletedAt != nil
}

// FeedItem is a post joined with its author for feed rendering.
type FeedItem struct {
	ID              int64     `db:"id"               json:"id"`
	Content         string    `db:"content"          json:"content"`
	PostType        string    `db:"post_type"        json:"post_type"`
	ChannelID       *string   `db:"channel_id"       json:"channel_id,omitempty"`
	MediaURL        *string   `db:"media_url"        json:"media_url,omitempty"`
	MediaType       *string   `db:"media_type"       json:"media_type,omitempty"`
	AuthorID        string    `db:"author_id"        json:"author_id"`
	AuthorUsername  string    `db:"author_username"  json:"author_username"`
	AuthorBadge     string    `db:"author_badge"     json:"author_badge"`
	AuthorAvatarURL *string   `db:"author_avatar_url" json:"author_avatar_url,omitempty"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}
