// AngelaMos | 2026
// service.go

package post

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/taremwastudios/billboard/internal/channel"
	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/permission"
	"github.com/taremwastudios/billboard/internal/user"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

type UserReader interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type ChannelReader interface {
	GetByID(ctx context.Context, id string) (*channel.Channel, error)
	IsMember(ctx context.Context, channelID, userID string) (bool, error)
}

type BlobUploader interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// MediaInput is an uploaded attachment. MediaType is the coarse class
// ("image", "video") derived from the content type.
type MediaInput struct {
	Reader      io.Reader
	ContentType string
	MediaType   string
}

type Service struct {
	repo     Repository
	users    UserReader
	channels ChannelReader
	uploader BlobUploader
}

func NewService(repo Repository, users UserReader, channels ChannelReader, uploader BlobUploader) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		channels: channels,
		uploader: uploader,
	}
}

// Create runs the full posting gauntlet: author lookup, channel lookup
// for channel posts, then the permission rules. Media is only uploaded
// after every rule has passed.
func (s *Service) Create(ctx context.Context, authorID string, req CreatePostRequest, media *MediaInput) (*Post, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if !permission.ValidPostType(req.PostType) {
		return nil, core.InvalidInputError("unknown post type: " + req.PostType)
	}

	var channelOwnerID string
	if req.PostType == permission.PostTypeChannel {
		if req.ChannelID == nil {
			return nil, core.InvalidInputError("channel_id is required for channel posts")
		}
		ch, err := s.channels.GetByID(ctx, *req.ChannelID)
		if err != nil {
			return nil, err
		}
		channelOwnerID = ch.OwnerID
	} else if req.ChannelID != nil {
		return nil, core.InvalidInputError("channel_id is only valid for channel posts")
	}

	actor := permission.Actor{
		ID:            author.ID,
		Badge:         author.Badge,
		Muted:         author.IsMuted,
		EmailVerified: author.IsEmailVerified,
	}

	decision := permission.CanPost(actor, req.PostType, channelOwnerID, media != nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}

	p := &Post{
		AuthorID:  authorID,
		Content:   req.Content,
		PostType:  req.PostType,
		ChannelID: req.ChannelID,
	}

	if media != nil {
		key := fmt.Sprintf("posts/%s/%s", authorID, uuid.New().String())
		url, err := s.uploader.Upload(ctx, key, media.ContentType, media.Reader)
		if err != nil {
			return nil, fmt.Errorf("upload media: %w", err)
		}
		p.MediaURL = &url
		p.MediaType = &media.MediaType
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) WallFeed(ctx context.Context, limit int, afterID int64) (*FeedResponse, error) {
	items, err := s.repo.WallFeed(ctx, clampLimit(limit), afterID)
	if err != nil {
		return nil, err
	}
	return buildFeedResponse(items), nil
}

func (s *Service) NewsFeed(ctx context.Context, limit int, afterID int64) (*FeedResponse, error) {
	items, err := s.repo.NewsFeed(ctx, clampLimit(limit), afterID)
	if err != nil {
		return nil, err
	}
	return buildFeedResponse(items), nil
}

// ChannelFeed requires the reader to be the owner or a member.
func (s *Service) ChannelFeed(ctx context.Context, channelID, readerID string, limit int, afterID int64) (*FeedResponse, error) {
	reader, err := s.users.GetByID(ctx, readerID)
	if err != nil {
		return nil, err
	}

	ch, err := s.channels.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.channels.IsMember(ctx, channelID, readerID)
	if err != nil {
		return nil, err
	}

	actor := permission.Actor{
		ID:            reader.ID,
		Badge:         reader.Badge,
		Muted:         reader.IsMuted,
		EmailVerified: reader.IsEmailVerified,
	}

	if err := permission.CanAccessChannel(actor, ch.OwnerID, isMember).Err(); err != nil {
		return nil, err
	}

	items, err := s.repo.ChannelFeed(ctx, channelID, clampLimit(limit), afterID)
	if err != nil {
		return nil, err
	}

	return buildFeedResponse(items), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		return MaxFeedLimit
	}
	return limit
}

// buildFeedResponse sets next_id to the newest id in the page, which
// callers pass back as after_id on their next poll.
func buildFeedResponse(items []FeedItem) *FeedResponse {
	resp := &FeedResponse{Posts: items}
	if len(items) > 0 {
		resp.NextID = &items[0].ID
	}
	return resp
}
