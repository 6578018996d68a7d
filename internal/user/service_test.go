// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taremwastudios/billboard/internal/core"
)

type fakeRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*User{}, byEmail: map[string]*User{}}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	stored := *u
	f.byID[u.ID] = &stored
	f.byEmail[u.Email] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user by id: %w", core.ErrNotFound)
	}
	return u, nil
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user by username: %w", core.ErrNotFound)
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	return u, nil
}

// Mirrors the store contract: flipping an already-verified row is a
// no-op, not an error.
func (f *fakeRepo) MarkEmailVerified(_ context.Context, id string) error {
	if u, ok := f.byID[id]; ok {
		u.IsEmailVerified = true
	}
	return nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, id string, bio, fullName, phone *string) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if bio != nil {
		u.Bio = *bio
	}
	if fullName != nil {
		u.FullName = *fullName
	}
	if phone != nil {
		u.Phone = *phone
	}
	return nil
}

func (f *fakeRepo) UpdateAvatar(_ context.Context, id, avatarURL string) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("update avatar: %w", core.ErrNotFound)
	}
	u.AvatarURL = &avatarURL
	return nil
}

func (f *fakeRepo) UpdateBadge(_ context.Context, id, badge string) error {
	return f.UpdateBadgeIn(context.Background(), nil, id, badge)
}

func (f *fakeRepo) UpdateBadgeIn(_ context.Context, _ core.DBTX, id, badge string) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("update badge: %w", core.ErrNotFound)
	}
	u.Badge = badge
	return nil
}

func (f *fakeRepo) SetMuted(_ context.Context, username string, muted bool) (*User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			u.IsMuted = muted
			return u, nil
		}
	}
	return nil, fmt.Errorf("set muted: %w", core.ErrNotFound)
}

func (f *fakeRepo) IncrementTokenVersion(_ context.Context, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}
	u.TokenVersion++
	return nil
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

type recordingNotifier struct {
	sent chan string
}

func (n *recordingNotifier) Send(_ context.Context, to, _, _ string) error {
	n.sent <- to
	return nil
}

func newTestService() (*Service, *fakeRepo, *recordingNotifier) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{sent: make(chan string, 8)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, notifier, nil, logger), repo, notifier
}

func TestCreate_IssuesVerificationCodeAndMails(t *testing.T) {
	svc, _, notifier := newTestService()

	u, err := svc.Create(context.Background(), CreateParams{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, BadgeNone, u.Badge)
	assert.False(t, u.IsEmailVerified)
	require.NotNil(t, u.VerificationCode)
	assert.Len(t, *u.VerificationCode, verificationCodeLength)

	// Mail goes out in the background.
	assert.Equal(t, "alice@example.com", <-notifier.sent)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateParams{Username: "alice2", Email: "a@example.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDuplicateKey))
}

func TestVerifyEmail_HappyPathAndRepeat(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateParams{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	code := *u.VerificationCode

	require.NoError(t, svc.VerifyEmail(ctx, "a@example.com", code))
	assert.True(t, repo.byEmail["a@example.com"].IsEmailVerified)

	// Re-submitting the consumed code still reports success.
	assert.NoError(t, svc.VerifyEmail(ctx, "a@example.com", code))
}

// staleReadRepo serves reads that do not yet see another submission's
// write, like two requests racing on the same code.
type staleReadRepo struct {
	*fakeRepo
}

func (r *staleReadRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := r.fakeRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	stale := *u
	stale.IsEmailVerified = false
	return &stale, nil
}

func TestVerifyEmail_ConcurrentWinnerStillSucceeds(t *testing.T) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{sent: make(chan string, 8)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(&staleReadRepo{fakeRepo: repo}, notifier, nil, logger)
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateParams{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	code := *u.VerificationCode

	// Another request with the same code commits first.
	repo.byEmail["a@example.com"].IsEmailVerified = true

	require.NoError(t, svc.VerifyEmail(ctx, "a@example.com", code))
	assert.True(t, repo.byEmail["a@example.com"].IsEmailVerified)
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateParams{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	wrong := "0000000"
	if *u.VerificationCode == wrong {
		wrong = "1111111"
	}

	err = svc.VerifyEmail(ctx, "a@example.com", wrong)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestVerifyEmail_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.VerifyEmail(context.Background(), "nobody@example.com", "1234567")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestGrantBadge_RejectsUnknownBadge(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateParams{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	err = svc.GrantBadge(ctx, u.ID, "platinum")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))

	require.NoError(t, svc.GrantBadge(ctx, u.ID, BadgeGold))
	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, BadgeGold, got.Badge)
}

func TestSetMuted(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	muted, err := svc.SetMuted(ctx, "alice", true)
	require.NoError(t, err)
	assert.True(t, muted.IsMuted)

	unmuted, err := svc.SetMuted(ctx, "alice", false)
	require.NoError(t, err)
	assert.False(t, unmuted.IsMuted)

	_, err = svc.SetMuted(ctx, "nobody", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
