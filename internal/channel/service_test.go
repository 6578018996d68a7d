// AngelaMos | 2026
// service_test.go

package channel

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/user"
)

type fakeRepo struct {
	channels map[string]*Channel
	members  map[string]map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		channels: map[string]*Channel{},
		members:  map[string]map[string]bool{},
	}
}

func (f *fakeRepo) Create(_ context.Context, _ core.DBTX, ch *Channel) error {
	stored := *ch
	f.channels[ch.ID] = &stored
	return nil
}

func (f *fakeRepo) AddMember(_ context.Context, _ core.DBTX, channelID, userID string) error {
	if f.members[channelID] == nil {
		f.members[channelID] = map[string]bool{}
	}
	f.members[channelID][userID] = true
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Channel, error) {
	ch, ok := f.channels[id]
	if !ok {
		return nil, fmt.Errorf("get channel: %w", core.ErrNotFound)
	}
	return ch, nil
}

func (f *fakeRepo) List(_ context.Context) ([]Summary, error) {
	out := []Summary{}
	for _, ch := range f.channels {
		out = append(out, Summary{
			ID:          ch.ID,
			Name:        ch.Name,
			OwnerID:     ch.OwnerID,
			MemberCount: int64(len(f.members[ch.ID])),
		})
	}
	return out, nil
}

func (f *fakeRepo) IsMember(_ context.Context, channelID, userID string) (bool, error) {
	return f.members[channelID][userID], nil
}

func (f *fakeRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(f.channels)), nil
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

// passthroughTx hands the callback a nil executor; the fakes ignore it.
func passthroughTx(_ context.Context, fn func(db core.DBTX) error) error {
	return fn(nil)
}

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	users := &fakeUsers{users: map[string]*user.User{
		"alice": {ID: "alice"},
		"bob":   {ID: "bob"},
	}}
	return NewService(passthroughTx, repo, users), repo
}

func seedChannel(repo *fakeRepo, id, owner string) {
	repo.channels[id] = &Channel{ID: id, Name: "c", OwnerID: owner}
	repo.members[id] = map[string]bool{owner: true}
}

func TestCreate_OwnerBecomesMember(t *testing.T) {
	svc, repo := newTestService(t)

	ch, err := svc.Create(context.Background(), "alice", CreateChannelRequest{
		Name:             "campus-events",
		AccessPriceCents: 250,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ch.ID)
	assert.Equal(t, int64(250), ch.AccessPriceCents)
	assert.True(t, repo.members[ch.ID]["alice"])
}

func TestCreate_UnknownOwner(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Create(context.Background(), "ghost", CreateChannelRequest{Name: "orphaned"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.Empty(t, repo.channels)
}

func TestJoin_Idempotent(t *testing.T) {
	svc, repo := newTestService(t)
	seedChannel(repo, "ch1", "alice")
	ctx := context.Background()

	require.NoError(t, svc.Join(ctx, "ch1", "bob"))
	assert.True(t, repo.members["ch1"]["bob"])

	// Joining again succeeds and changes nothing.
	require.NoError(t, svc.Join(ctx, "ch1", "bob"))
	assert.Len(t, repo.members["ch1"], 2)
}

func TestJoin_UnknownChannel(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Join(context.Background(), "nope", "bob")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestJoin_UnknownUser(t *testing.T) {
	svc, repo := newTestService(t)
	seedChannel(repo, "ch1", "alice")

	err := svc.Join(context.Background(), "ch1", "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestIsMember(t *testing.T) {
	svc, repo := newTestService(t)
	seedChannel(repo, "ch1", "alice")
	ctx := context.Background()

	ok, err := svc.IsMember(ctx, "ch1", "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsMember(ctx, "ch1", "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestList_IncludesMemberCounts(t *testing.T) {
	svc, repo := newTestService(t)
	seedChannel(repo, "ch1", "alice")
	repo.members["ch1"]["bob"] = true

	summaries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(2), summaries[0].MemberCount)
}
