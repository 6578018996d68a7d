// AngelaMos | 2026
// service.go

package channel

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/user"
)

// UserReader is the slice of the user service the channel service needs.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service struct {
	tx    core.TxRunner
	repo  Repository
	users UserReader
}

func NewService(tx core.TxRunner, repo Repository, users UserReader) *Service {
	return &Service{
		tx:    tx,
		repo:  repo,
		users: users,
	}
}

// Create inserts the channel and the owner's membership atomically, so
// an owner can never exist without being a member of their own channel.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateChannelRequest) (*Channel, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	ch := &Channel{
		ID:               uuid.New().String(),
		Name:             req.Name,
		Description:      req.Description,
		OwnerID:          ownerID,
		AccessPriceCents: req.AccessPriceCents,
	}

	err := s.tx(ctx, func(db core.DBTX) error {
		if err := s.repo.Create(ctx, db, ch); err != nil {
			return err
		}
		return s.repo.AddMember(ctx, db, ch.ID, ownerID)
	})
	if err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}

	return ch, nil
}

// Join adds the user to the channel. Joining twice succeeds silently.
func (s *Service) Join(ctx context.Context, channelID, userID string) error {
	if _, err := s.repo.GetByID(ctx, channelID); err != nil {
		return err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	return s.tx(ctx, func(db core.DBTX) error {
		return s.repo.AddMember(ctx, db, channelID, userID)
	})
}

func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Channel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) IsMember(ctx context.Context, channelID, userID string) (bool, error) {
	return s.repo.IsMember(ctx, channelID, userID)
}

func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}
