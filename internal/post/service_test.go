// AngelaMos | 2026
// service_test.go

package post

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taremwastudios/billboard/internal/channel"
	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/user"
)

type fakeRepo struct {
	posts  map[int64]*Post
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: map[int64]*Post{}}
}

func (f *fakeRepo) Create(_ context.Context, p *Post) error {
	f.nextID++
	p.ID = f.nextID
	stored := *p
	f.posts[p.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}
	return p, nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id int64) error {
	if p, ok := f.posts[id]; ok && p.DeletedAt == nil {
		now := p.CreatedAt
		p.DeletedAt = &now
	}
	return nil
}

func (f *fakeRepo) feed(postType string, channelID *string, limit int, afterID int64) []FeedItem {
	items := []FeedItem{}
	for id := f.nextID; id > afterID && len(items) < limit; id-- {
		p, ok := f.posts[id]
		if !ok || p.DeletedAt != nil || p.PostType != postType {
			continue
		}
		if channelID != nil && (p.ChannelID == nil || *p.ChannelID != *channelID) {
			continue
		}
		items = append(items, FeedItem{ID: p.ID, Content: p.Content, PostType: p.PostType, AuthorID: p.AuthorID})
	}
	return items
}

func (f *fakeRepo) WallFeed(_ context.Context, limit int, afterID int64) ([]FeedItem, error) {
	return f.feed("wall", nil, limit, afterID), nil
}

func (f *fakeRepo) NewsFeed(_ context.Context, limit int, afterID int64) ([]FeedItem, error) {
	return f.feed("news", nil, limit, afterID), nil
}

func (f *fakeRepo) ChannelFeed(_ context.Context, channelID string, limit int, afterID int64) ([]FeedItem, error) {
	return f.feed("channel", &channelID, limit, afterID), nil
}

func (f *fakeRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, p := range f.posts {
		if p.DeletedAt == nil {
			n++
		}
	}
	return n, nil
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

type fakeChannels struct {
	channels map[string]*channel.Channel
	members  map[string]map[string]bool
}

func (f *fakeChannels) GetByID(_ context.Context, id string) (*channel.Channel, error) {
	ch, ok := f.channels[id]
	if !ok {
		return nil, fmt.Errorf("get channel: %w", core.ErrNotFound)
	}
	return ch, nil
}

func (f *fakeChannels) IsMember(_ context.Context, channelID, userID string) (bool, error) {
	return f.members[channelID][userID], nil
}

type fakeUploader struct {
	uploads int
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	f.uploads++
	return "https://cdn.example.com/" + key, nil
}

func newTestService() (*Service, *fakeRepo, *fakeUsers, *fakeChannels, *fakeUploader) {
	repo := newFakeRepo()
	users := &fakeUsers{users: map[string]*user.User{
		"alice": {ID: "alice", Username: "alice", Badge: user.BadgeVerified, IsEmailVerified: true},
		"dev":   {ID: "dev", Username: "dev", Badge: user.BadgeDev, IsEmailVerified: true},
		"fresh": {ID: "fresh", Username: "fresh", Badge: user.BadgeNone, IsEmailVerified: true},
		"muted": {ID: "muted", Username: "muted", Badge: user.BadgeGold, IsEmailVerified: true, IsMuted: true},
	}}
	channels := &fakeChannels{
		channels: map[string]*channel.Channel{
			"ch1": {ID: "ch1", Name: "waves", OwnerID: "alice"},
		},
		members: map[string]map[string]bool{
			"ch1": {"dev": true},
		},
	}
	uploader := &fakeUploader{}
	return NewService(repo, users, channels, uploader), repo, users, channels, uploader
}

func TestCreate_WallPost(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	p, err := svc.Create(context.Background(), "alice", CreatePostRequest{
		Content:  "hello wall",
		PostType: "wall",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Nil(t, p.MediaURL)
}

func TestCreate_UnknownAuthor(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "ghost", CreatePostRequest{
		Content:  "boo",
		PostType: "wall",
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestCreate_MutedDenied(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "muted", CreatePostRequest{
		Content:  "silenced",
		PostType: "wall",
	}, nil)
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "MUTED", appErr.Code)
}

func TestCreate_NewsNeedsDevBadge(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "alice", CreatePostRequest{
		Content:  "breaking",
		PostType: "news",
	}, nil)
	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "DEV_ONLY", appErr.Code)

	_, err = svc.Create(context.Background(), "dev", CreatePostRequest{
		Content:  "breaking",
		PostType: "news",
	}, nil)
	assert.NoError(t, err)
}

func TestCreate_ChannelPostOwnerOnly(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	chID := "ch1"

	_, err := svc.Create(context.Background(), "dev", CreatePostRequest{
		Content:   "not mine",
		PostType:  "channel",
		ChannelID: &chID,
	}, nil)
	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_CHANNEL_OWNER", appErr.Code)

	_, err = svc.Create(context.Background(), "alice", CreatePostRequest{
		Content:   "owner speaking",
		PostType:  "channel",
		ChannelID: &chID,
	}, nil)
	assert.NoError(t, err)
}

func TestCreate_ChannelPostNeedsChannelID(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "alice", CreatePostRequest{
		Content:  "where to?",
		PostType: "channel",
	}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestCreate_MediaGatedBeforeUpload(t *testing.T) {
	svc, _, _, _, uploader := newTestService()

	media := &MediaInput{Reader: nil, ContentType: "image/png", MediaType: "image"}
	_, err := svc.Create(context.Background(), "fresh", CreatePostRequest{
		Content:  "pic",
		PostType: "wall",
	}, media)

	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "VERIFIED_REQUIRED", appErr.Code)

	// The denial must short-circuit before anything is stored.
	assert.Zero(t, uploader.uploads)
}

func TestCreate_MediaUploaded(t *testing.T) {
	svc, _, _, _, uploader := newTestService()

	media := &MediaInput{Reader: nil, ContentType: "image/png", MediaType: "image"}
	p, err := svc.Create(context.Background(), "alice", CreatePostRequest{
		Content:  "pic",
		PostType: "wall",
	}, media)

	require.NoError(t, err)
	require.NotNil(t, p.MediaURL)
	assert.Contains(t, *p.MediaURL, "posts/alice/")
	assert.Equal(t, "image", *p.MediaType)
	assert.Equal(t, 1, uploader.uploads)
}

func TestWallFeed_ExcludesNewsAndDeleted(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	ctx := context.Background()

	wall, err := svc.Create(ctx, "alice", CreatePostRequest{Content: "a", PostType: "wall"}, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "dev", CreatePostRequest{Content: "n", PostType: "news"}, nil)
	require.NoError(t, err)
	deleted, err := svc.Create(ctx, "alice", CreatePostRequest{Content: "d", PostType: "wall"}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID))

	resp, err := svc.WallFeed(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, wall.ID, resp.Posts[0].ID)
}

func TestWallFeed_AfterIDCursor(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	var last *Post
	for i := 0; i < 3; i++ {
		p, err := svc.Create(ctx, "alice", CreatePostRequest{Content: "x", PostType: "wall"}, nil)
		require.NoError(t, err)
		last = p
	}

	resp, err := svc.WallFeed(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, resp.Posts, 3)
	require.NotNil(t, resp.NextID)
	assert.Equal(t, last.ID, *resp.NextID)

	// Polling with the returned cursor yields nothing new.
	resp, err = svc.WallFeed(ctx, 0, *resp.NextID)
	require.NoError(t, err)
	assert.Empty(t, resp.Posts)
	assert.Nil(t, resp.NextID)

	// A later post shows up above the cursor.
	p, err := svc.Create(ctx, "alice", CreatePostRequest{Content: "new", PostType: "wall"}, nil)
	require.NoError(t, err)
	resp, err = svc.WallFeed(ctx, 0, last.ID)
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, p.ID, resp.Posts[0].ID)
}

func TestChannelFeed_MembershipRequired(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ChannelFeed(ctx, "ch1", "fresh", 0, 0)
	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "ACCESS_DENIED", appErr.Code)

	_, err = svc.ChannelFeed(ctx, "ch1", "dev", 0, 0)
	assert.NoError(t, err)

	// Owner reads without an explicit membership row.
	_, err = svc.ChannelFeed(ctx, "ch1", "alice", 0, 0)
	assert.NoError(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultFeedLimit, clampLimit(0))
	assert.Equal(t, DefaultFeedLimit, clampLimit(-5))
	assert.Equal(t, 42, clampLimit(42))
	assert.Equal(t, MaxFeedLimit, clampLimit(1000))
}
