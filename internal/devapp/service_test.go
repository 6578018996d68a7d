// AngelaMos | 2026
// service_test.go

package devapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/user"
)

type fakeRepo struct {
	apps map[string]*Application
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{apps: map[string]*Application{}}
}

func (f *fakeRepo) Create(_ context.Context, a *Application) error {
	stored := *a
	f.apps[a.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, fmt.Errorf("get dev application: %w", core.ErrNotFound)
	}
	return a, nil
}

func (f *fakeRepo) Approve(_ context.Context, _ core.DBTX, id string) (bool, error) {
	a, ok := f.apps[id]
	if !ok || a.Status != StatusPending {
		return false, nil
	}
	a.Status = StatusApproved
	return true, nil
}

func (f *fakeRepo) ListPending(_ context.Context) ([]PendingApplication, error) {
	out := []PendingApplication{}
	for _, a := range f.apps {
		if a.Status == StatusPending {
			out = append(out, PendingApplication{ID: a.ID, UserID: a.UserID, Motivation: a.Motivation})
		}
	}
	return out, nil
}

func (f *fakeRepo) HasPendingForUser(_ context.Context, userID string) (bool, error) {
	for _, a := range f.apps {
		if a.UserID == userID && a.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

type fakeUploader struct {
	uploads int
	lastKey string
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	f.uploads++
	f.lastKey = key
	return "https://blobs.example.com/" + key, nil
}

type fakeBadges struct {
	users  *fakeUsers
	grants int
}

func (f *fakeBadges) GrantBadgeTx(_ context.Context, _ core.DBTX, userID, badge string) error {
	u, ok := f.users.users[userID]
	if !ok {
		return fmt.Errorf("grant badge: %w", core.ErrNotFound)
	}
	u.Badge = badge
	f.grants++
	return nil
}

// passthroughTx hands the callback a nil executor; the fakes ignore it.
func passthroughTx(_ context.Context, fn func(db core.DBTX) error) error {
	return fn(nil)
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *fakeUploader, *fakeBadges) {
	t.Helper()
	repo := newFakeRepo()
	uploader := &fakeUploader{}
	users := &fakeUsers{users: map[string]*user.User{
		"alice": {ID: "alice", Badge: user.BadgeVerified},
		"dev":   {ID: "dev", Badge: user.BadgeDev},
	}}
	badges := &fakeBadges{users: users}
	return NewService(passthroughTx, repo, users, badges, uploader), repo, uploader, badges
}

func TestApply_HappyPath(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	a, err := svc.Apply(context.Background(), "alice", "I build campus tools", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, StatusPending, a.Status)
	assert.Nil(t, a.CertURL)
	assert.Contains(t, repo.apps, a.ID)
}

func TestApply_CertificateUploadKeyedByApplication(t *testing.T) {
	svc, _, uploader, _ := newTestService(t)

	cert := &CertInput{Reader: strings.NewReader("pdf bytes"), ContentType: "application/pdf"}
	a, err := svc.Apply(context.Background(), "alice", "motivation", cert)
	require.NoError(t, err)

	assert.Equal(t, 1, uploader.uploads)
	assert.Equal(t, "dev-certs/alice/"+a.ID, uploader.lastKey)
	require.NotNil(t, a.CertURL)
	assert.Contains(t, *a.CertURL, a.ID)
}

func TestApply_AlreadyDev(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Apply(context.Background(), "dev", "motivation", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestApply_DuplicatePending(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "alice", "first", nil)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, "alice", "second", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDuplicateKey))
}

func TestApply_UnknownUser(t *testing.T) {
	svc, _, uploader, _ := newTestService(t)

	cert := &CertInput{Reader: strings.NewReader("x"), ContentType: "application/pdf"}
	_, err := svc.Apply(context.Background(), "ghost", "motivation", cert)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.Zero(t, uploader.uploads)
}

func TestApprove_GrantsDevBadgeOnce(t *testing.T) {
	svc, _, _, badges := newTestService(t)
	ctx := context.Background()

	a, err := svc.Apply(ctx, "alice", "motivation", nil)
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	assert.Equal(t, user.BadgeDev, badges.users.users["alice"].Badge)
	require.Equal(t, 1, badges.grants)

	// Approving again succeeds without a second grant.
	again, err := svc.Approve(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, again.Status)
	assert.Equal(t, 1, badges.grants)
}

func TestApprove_UnknownApplication(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Approve(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
