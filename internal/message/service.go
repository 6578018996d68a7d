// AngelaMos | 2026
// service.go

package message

import (
	"context"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/permission"
	"github.com/taremwastudios/billboard/internal/user"
)

const conversationLimit = 500

type UserReader interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service struct {
	repo  Repository
	users UserReader
}

func NewService(repo Repository, users UserReader) *Service {
	return &Service{
		repo:  repo,
		users: users,
	}
}

func (s *Service) Send(ctx context.Context, senderID string, req SendMessageRequest) (*Message, error) {
	if senderID == req.RecipientID {
		return nil, core.InvalidInputError("cannot message yourself")
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	actor := permission.Actor{
		ID:            sender.ID,
		Badge:         sender.Badge,
		Muted:         sender.IsMuted,
		EmailVerified: sender.IsEmailVerified,
	}

	if err := permission.CanSendMessage(actor).Err(); err != nil {
		return nil, err
	}

	m := &Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Conversation(ctx context.Context, userID, partnerID string) ([]Message, error) {
	if _, err := s.users.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}

	return s.repo.Conversation(ctx, userID, partnerID, conversationLimit)
}

func (s *Service) ChatList(ctx context.Context, userID string) ([]ChatPartner, error) {
	return s.repo.ChatPartners(ctx, userID)
}

// Unreads reports zero for every conversation the caller has. Counts
// become real once read markers carry through to queries.
func (s *Service) Unreads(ctx context.Context, userID string) (*UnreadsResponse, error) {
	partners, err := s.repo.ChatPartners(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(partners))
	for _, p := range partners {
		counts[p.UserID] = 0
	}

	return &UnreadsResponse{Counts: counts}, nil
}

// MarkRead accepts the marker and discards it.
func (s *Service) MarkRead(ctx context.Context, userID string, req MarkReadRequest) error {
	_, err := s.users.GetByID(ctx, req.PartnerID)
	return err
}
