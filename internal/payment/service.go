// AngelaMos | 2026
// service.go

package payment

import (
	"context"
	"fmt"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/user"
)

const (
	paymentIDLength        = 16
	confirmationCodeLength = 6
)

type UserReader interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// BadgeGranter applies a badge inside the caller's transaction so a
// completed payment and its badge can never disagree.
type BadgeGranter interface {
	GrantBadgeTx(ctx context.Context, db core.DBTX, userID, badge string) error
}

type Service struct {
	tx     core.TxRunner
	repo   Repository
	users  UserReader
	badges BadgeGranter
}

func NewService(tx core.TxRunner, repo Repository, users UserReader, badges BadgeGranter) *Service {
	return &Service{
		tx:     tx,
		repo:   repo,
		users:  users,
		badges: badges,
	}
}

// Initiate creates a pending payment for a catalog item. The
// confirmation code is stored hashed and returned exactly once.
func (s *Service) Initiate(ctx context.Context, userID string, req InitiateRequest) (*InitiateResponse, error) {
	item, ok := LookupItem(req.Item)
	if !ok {
		return nil, core.InvalidInputError("unknown item: " + req.Item)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	id, err := core.GenerateOpaqueID(paymentIDLength)
	if err != nil {
		return nil, fmt.Errorf("generate payment id: %w", err)
	}

	code, err := core.GenerateNumericCode(confirmationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}

	p := &Payment{
		ID:               id,
		UserID:           userID,
		Item:             req.Item,
		AmountCents:      item.AmountCents,
		Status:           StatusPending,
		ConfirmationHash: core.HashToken(code),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return &InitiateResponse{
		PaymentID:        p.ID,
		Item:             p.Item,
		AmountCents:      p.AmountCents,
		ConfirmationCode: code,
	}, nil
}

// Confirm completes the payment and grants the badge atomically.
// Confirming an already-completed payment succeeds without granting
// anything twice.
func (s *Service) Confirm(ctx context.Context, callerID string, req ConfirmRequest) (*ConfirmResponse, error) {
	p, err := s.repo.GetByID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	if p.UserID != callerID {
		return nil, core.ForbiddenError("payment belongs to another user")
	}

	item, ok := LookupItem(p.Item)
	if !ok {
		return nil, core.InvalidInputError("unknown item: " + p.Item)
	}

	if !core.CompareTokenHash(req.ConfirmationCode, p.ConfirmationHash) {
		return nil, core.InvalidInputError("invalid confirmation code")
	}

	if err := s.complete(ctx, p.ID, p.UserID, item.Badge); err != nil {
		return nil, err
	}

	return &ConfirmResponse{
		PaymentID: p.ID,
		Status:    StatusCompleted,
		Badge:     item.Badge,
	}, nil
}

// Approve force-completes a payment without a confirmation code.
// Admin only; routing enforces the role.
func (s *Service) Approve(ctx context.Context, paymentID string) (*ConfirmResponse, error) {
	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	item, ok := LookupItem(p.Item)
	if !ok {
		return nil, core.InvalidInputError("unknown item: " + p.Item)
	}

	if err := s.complete(ctx, p.ID, p.UserID, item.Badge); err != nil {
		return nil, err
	}

	return &ConfirmResponse{
		PaymentID: p.ID,
		Status:    StatusCompleted,
		Badge:     item.Badge,
	}, nil
}

func (s *Service) ListPending(ctx context.Context) ([]Payment, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) complete(ctx context.Context, paymentID, userID, badge string) error {
	return s.tx(ctx, func(db core.DBTX) error {
		transitioned, err := s.repo.Complete(ctx, db, paymentID)
		if err != nil {
			return err
		}

		if !transitioned {
			return nil
		}

		// A vanished user rolls the completion back.
		return s.badges.GrantBadgeTx(ctx, db, userID, badge)
	})
}
