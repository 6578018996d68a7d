// AngelaMos | 2026
// entity.go

package message

import (
	"time"
)

type Message struct {
	ID          int64     `db:"id"           json:"id"`
	SenderID    string    `db:"sender_id"    json:"sender_id"`
	RecipientID string    `db:"recipient_id" json:"recipient_id"`
	Content     string    `db:"content"      json:"content"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}

// ChatPartner is one row of the chat list: a user the caller has
// exchanged messages with, newest conversation first.
type ChatPartner struct {
	UserID        string    `db:"user_id"         json:"user_id"`
	Username      string    `db:"username"        json:"username"`
	Badge         string    `db:"badge"           json:"badge"`
	AvatarURL     *string   `db:"avatar_url"      json:"avatar_url,omitempty"`
	LastMessageAt time.Time `db:"last_message_at" json:"last_message_at"`
}
