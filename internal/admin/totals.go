// AngelaMos | 2026
// totals.go

package admin

import (
	"context"
)

type Counter interface {
	CountActive(ctx context.Context) (int64, error)
}

// TotalsService aggregates the per-store counters.
type TotalsService struct {
	users    Counter
	posts    Counter
	channels Counter
}

func NewTotalsService(users, posts, channels Counter) *TotalsService {
	return &TotalsService{
		users:    users,
		posts:    posts,
		channels: channels,
	}
}

func (s *TotalsService) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	var err error

	if t.Users, err = s.users.CountActive(ctx); err != nil {
		return t, err
	}
	if t.Posts, err = s.posts.CountActive(ctx); err != nil {
		return t, err
	}
	if t.Channels, err = s.channels.CountActive(ctx); err != nil {
		return t, err
	}

	return t, nil
}
