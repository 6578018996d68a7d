// AngelaMos | 2026
// dto.go

package message

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid4"`
	Content     string `json:"content"      validate:"required,max=2000"`
}

type ConversationResponse struct {
	Messages []Message `json:"messages"`
}

type ChatListResponse struct {
	Chats []ChatPartner `json:"chats"`
}

// UnreadsResponse always reports zero per conversation. Real unread
// tracking needs client read receipts; markers are accepted and
// discarded until then.
type UnreadsResponse struct {
	Counts map[string]int `json:"counts"`
}

type MarkReadRequest struct {
	PartnerID string `json:"partner_id" validate:"required,uuid4"`
	LastSeen  int64  `json:"last_seen"  validate:"omitempty,min=0"`
}
