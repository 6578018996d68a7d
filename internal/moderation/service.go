// AngelaMos | 2026
// service.go

package moderation

import (
	"context"

	"github.com/taremwastudios/billboard/internal/post"
	"github.com/taremwastudios/billboard/internal/user"
)

type PostStore interface {
	GetByID(ctx context.Context, id int64) (*post.Post, error)
	SoftDelete(ctx context.Context, id int64) error
}

type UserStore interface {
	SetMuted(ctx context.Context, username string, muted bool) (*user.User, error)
}

type Service struct {
	repo  Repository
	posts PostStore
	users UserStore
}

func NewService(repo Repository, posts PostStore, users UserStore) *Service {
	return &Service{
		repo:  repo,
		posts: posts,
		users: users,
	}
}

// Report files a report against an existing post. Reporting the same
// post again just appends another row.
func (s *Service) Report(ctx context.Context, reporterID string, postID int64, reason string) (*Report, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	rep := &Report{
		PostID:     postID,
		ReporterID: reporterID,
		Reason:     reason,
	}

	if err := s.repo.CreateReport(ctx, rep); err != nil {
		return nil, err
	}

	return rep, nil
}

func (s *Service) ListReports(ctx context.Context) ([]ReportDetail, error) {
	return s.repo.ListReports(ctx)
}

// DeletePost soft-deletes. Deleting an already-deleted post succeeds.
func (s *Service) DeletePost(ctx context.Context, postID int64) error {
	return s.posts.SoftDelete(ctx, postID)
}

// MuteUser is one-directional. There is no unmute operation.
func (s *Service) MuteUser(ctx context.Context, username string) (*user.User, error) {
	return s.users.SetMuted(ctx, username, true)
}
