// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taremwastudios/billboard/internal/core"
)

const verificationCodeLength = 7

// Notifier delivers account mail. Sends are fire-and-forget: a delivery
// failure is logged and never blocks the request that triggered it.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// BlobUploader stores binary uploads and returns a public URL.
type BlobUploader interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

type CreateParams struct {
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	FullName     string
	HomeAddress  string
}

type Service struct {
	repo     Repository
	notifier Notifier
	uploader BlobUploader
	logger   *slog.Logger
}

func NewService(repo Repository, notifier Notifier, uploader BlobUploader, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	code, err := core.GenerateNumericCode(verificationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("generate verification code: %w", err)
	}

	u := &User{
		ID:               uuid.New().String(),
		Username:         params.Username,
		Email:            params.Email,
		PasswordHash:     params.PasswordHash,
		Phone:            params.Phone,
		FullName:         params.FullName,
		HomeAddress:      params.HomeAddress,
		Role:             RoleUser,
		Badge:            BadgeNone,
		VerificationCode: &code,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendAsync(u.Email, "Confirm your Campus Billboard account",
		fmt.Sprintf("Hi %s,\n\nYour verification code is %s.\n\nEnter it to activate your account.", u.Username, code))

	return u, nil
}

// VerifyEmail marks the account verified when the code matches. Submitting
// the same code again after verification succeeds without touching the row.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if u.VerificationCode == nil ||
		subtle.ConstantTimeCompare([]byte(*u.VerificationCode), []byte(code)) != 1 {
		return core.InvalidInputError("invalid verification code")
	}

	if u.IsEmailVerified {
		return nil
	}

	return s.repo.MarkEmailVerified(ctx, u.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	if err := s.repo.UpdateProfile(ctx, id, req.Bio, req.FullName, req.Phone); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UploadAvatar(ctx context.Context, id, contentType string, r io.Reader) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%s", id, uuid.New().String())
	url, err := s.uploader.Upload(ctx, key, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.repo.UpdateAvatar(ctx, id, url); err != nil {
		return "", err
	}

	return url, nil
}

// GrantBadge assigns one of the known badges. Unknown badge names fail
// closed so a malformed catalog entry can never write garbage state.
func (s *Service) GrantBadge(ctx context.Context, id, badge string) error {
	if !ValidBadges[badge] {
		return core.InvalidInputError("unknown badge: " + badge)
	}
	return s.repo.UpdateBadge(ctx, id, badge)
}

// GrantBadgeTx is GrantBadge bound to the caller's transaction.
func (s *Service) GrantBadgeTx(ctx context.Context, db core.DBTX, id, badge string) error {
	if !ValidBadges[badge] {
		return core.InvalidInputError("unknown badge: " + badge)
	}
	return s.repo.UpdateBadgeIn(ctx, db, id, badge)
}

func (s *Service) SetMuted(ctx context.Context, username string, muted bool) (*User, error) {
	return s.repo.SetMuted(ctx, username, muted)
}

func (s *Service) IncrementTokenVersion(ctx context.Context, id string) error {
	return s.repo.IncrementTokenVersion(ctx, id)
}

func (s *Service) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}

func (s *Service) sendAsync(to, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.notifier.Send(ctx, to, subject, body); err != nil {
			s.logger.Warn("notification send failed",
				slog.String("to", to),
				slog.String("subject", subject),
				slog.String("error", err.Error()),
			)
		}
	}()
}
