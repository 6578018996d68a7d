// AngelaMos | 2026
// service.go

package devapp

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/user"
)

type UserReader interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type BadgeGranter interface {
	GrantBadgeTx(ctx context.Context, db core.DBTX, userID, badge string) error
}

type BlobUploader interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// CertInput is an optional certificate file attached to an application.
type CertInput struct {
	Reader      io.Reader
	ContentType string
}

type Service struct {
	tx       core.TxRunner
	repo     Repository
	users    UserReader
	badges   BadgeGranter
	uploader BlobUploader
}

func NewService(tx core.TxRunner, repo Repository, users UserReader, badges BadgeGranter, uploader BlobUploader) *Service {
	return &Service{
		tx:       tx,
		repo:     repo,
		users:    users,
		badges:   badges,
		uploader: uploader,
	}
}

// Apply files a dev-badge application. Users who already hold the dev
// badge or have an application in review are turned away.
func (s *Service) Apply(ctx context.Context, userID, motivation string, cert *CertInput) (*Application, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.HasDevBadge() {
		return nil, core.InvalidInputError("dev badge already granted")
	}

	pending, err := s.repo.HasPendingForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, core.DuplicateError("dev application")
	}

	a := &Application{
		ID:         uuid.New().String(),
		UserID:     userID,
		Motivation: motivation,
		Status:     StatusPending,
	}

	if cert != nil {
		key := fmt.Sprintf("dev-certs/%s/%s", userID, a.ID)
		url, err := s.uploader.Upload(ctx, key, cert.ContentType, cert.Reader)
		if err != nil {
			return nil, fmt.Errorf("upload certificate: %w", err)
		}
		a.CertURL = &url
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Approve grants the dev badge and marks the application reviewed in
// one transaction. Approving twice succeeds without a second grant.
func (s *Service) Approve(ctx context.Context, applicationID string) (*Application, error) {
	a, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	err = s.tx(ctx, func(db core.DBTX) error {
		transitioned, err := s.repo.Approve(ctx, db, a.ID)
		if err != nil {
			return err
		}

		if !transitioned {
			return nil
		}

		return s.badges.GrantBadgeTx(ctx, db, a.UserID, user.BadgeDev)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, applicationID)
}

func (s *Service) ListPending(ctx context.Context) ([]PendingApplication, error) {
	return s.repo.ListPending(ctx)
}
