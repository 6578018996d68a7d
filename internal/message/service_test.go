// AngelaMos | 2026
// service_test.go

package message

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/user"
)

type fakeRepo struct {
	messages []Message
	nextID   int64
}

func (f *fakeRepo) Create(_ context.Context, m *Message) error {
	f.nextID++
	m.ID = f.nextID
	m.CreatedAt = time.Now()
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeRepo) Conversation(_ context.Context, userID, partnerID string, limit int) ([]Message, error) {
	out := []Message{}
	for _, m := range f.messages {
		if len(out) >= limit {
			break
		}
		if (m.SenderID == userID && m.RecipientID == partnerID) ||
			(m.SenderID == partnerID && m.RecipientID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ChatPartners(_ context.Context, userID string) ([]ChatPartner, error) {
	seen := map[string]bool{}
	out := []ChatPartner{}
	for i := len(f.messages) - 1; i >= 0; i-- {
		m := f.messages[i]
		var partner string
		switch userID {
		case m.SenderID:
			partner = m.RecipientID
		case m.RecipientID:
			partner = m.SenderID
		default:
			continue
		}
		if !seen[partner] {
			seen[partner] = true
			out = append(out, ChatPartner{UserID: partner, LastMessageAt: m.CreatedAt})
		}
	}
	return out, nil
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

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	users := &fakeUsers{users: map[string]*user.User{
		"alice": {ID: "alice", IsEmailVerified: true},
		"bob":   {ID: "bob", IsEmailVerified: true},
		"muted": {ID: "muted", IsEmailVerified: true, IsMuted: true},
		"fresh": {ID: "fresh"},
	}}
	return NewService(repo, users), repo
}

func TestSend_HappyPath(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		RecipientID: "bob",
		Content:     "hi bob",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
	assert.Equal(t, "alice", m.SenderID)
}

func TestSend_SelfMessageRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		RecipientID: "alice",
		Content:     "dear me",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestSend_MutedSenderDenied(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Send(context.Background(), "muted", SendMessageRequest{
		RecipientID: "bob",
		Content:     "psst",
	})
	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "MUTED", appErr.Code)
}

func TestSend_UnverifiedSenderDenied(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Send(context.Background(), "fresh", SendMessageRequest{
		RecipientID: "bob",
		Content:     "hello",
	})
	require.Error(t, err)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "EMAIL_UNVERIFIED", appErr.Code)
}

func TestSend_UnknownRecipient(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		RecipientID: "ghost",
		Content:     "anyone there?",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestConversation_BothDirectionsOldestFirst(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Send(ctx, "alice", SendMessageRequest{RecipientID: "bob", Content: "one"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, "bob", SendMessageRequest{RecipientID: "alice", Content: "two"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, "alice", SendMessageRequest{RecipientID: "muted", Content: "other thread"})
	require.NoError(t, err)

	msgs, err := svc.Conversation(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "two", msgs[1].Content)
}

func TestUnreads_AlwaysZero(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Send(ctx, "alice", SendMessageRequest{RecipientID: "bob", Content: "unread"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, "bob", SendMessageRequest{RecipientID: "alice", Content: "also unread"})
	require.NoError(t, err)

	resp, err := svc.Unreads(ctx, "alice")
	require.NoError(t, err)
	require.Contains(t, resp.Counts, "bob")
	for partner, count := range resp.Counts {
		assert.Zero(t, count, "partner %s", partner)
	}
}

func TestMarkRead_AcceptsAndDiscards(t *testing.T) {
	svc, _ := newTestService()

	err := svc.MarkRead(context.Background(), "alice", MarkReadRequest{PartnerID: "bob", LastSeen: 99})
	assert.NoError(t, err)

	err = svc.MarkRead(context.Background(), "alice", MarkReadRequest{PartnerID: "ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
