// AngelaMos | 2026
// repository.go

package message

import (
	"context"
	"fmt"

	"github.com/taremwastudios/billboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	Conversation(ctx context.Context, userID, partnerID string, limit int) ([]Message, error)
	ChatPartners(ctx context.Context, userID string) ([]ChatPartner, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO chat_messages (sender_id, recipient_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.GetContext(ctx, m, query, m.SenderID, m.RecipientID, m.Content)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

// Conversation returns both directions of the thread, oldest first.
func (r *repository) Conversation(ctx context.Context, userID, partnerID string, limit int) ([]Message, error) {
	query := `
		SELECT id, sender_id, recipient_id, content, created_at
		FROM chat_messages
		WHERE (sender_id = $1 AND recipient_id = $2)
			OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY id ASC
		LIMIT $3`

	messages := []Message{}
	if err := r.db.SelectContext(ctx, &messages, query, userID, partnerID, limit); err != nil {
		return nil, fmt.Errorf("conversation: %w", err)
	}

	return messages, nil
}

func (r *repository) ChatPartners(ctx context.Context, userID string) ([]ChatPartner, error) {
	query := `
		SELECT
			u.id AS user_id,
			u.username,
			u.badge,
			u.avatar_url,
			MAX(m.created_at) AS last_message_at
		FROM chat_messages m
		JOIN users u ON u.id = CASE
			WHEN m.sender_id = $1 THEN m.recipient_id
			ELSE m.sender_id
		END
		WHERE m.sender_id = $1 OR m.recipient_id = $1
		GROUP BY u.id, u.username, u.badge, u.avatar_url
		ORDER BY last_message_at DESC`

	partners := []ChatPartner{}
	if err := r.db.SelectContext(ctx, &partners, query, userID); err != nil {
		return nil, fmt.Errorf("chat partners: %w", err)
	}

	return partners, nil
}
