// AngelaMos | 2026
// evaluator_test.go

package permission

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taremwastudios/billboard/internal/core"
)

func verifiedActor() Actor {
	return Actor{ID: "u1", Badge: "verified", EmailVerified: true}
}

func TestCanPost_WallAllowed(t *testing.T) {
	d := CanPost(verifiedActor(), PostTypeWall, "", false)
	assert.True(t, d.Allowed)
	assert.NoError(t, d.Err())
}

func TestCanPost_MutedBeatsEverything(t *testing.T) {
	actor := Actor{ID: "u1", Badge: "none", Muted: true, EmailVerified: false}

	// Muted and unverified with media on a news post: muted must win.
	d := CanPost(actor, PostTypeNews, "", true)
	require.False(t, d.Allowed)
	assert.Equal(t, ReasonMuted, d.Reason)
}

func TestCanPost_UnverifiedBeatsTypeRules(t *testing.T) {
	actor := Actor{ID: "u1", Badge: "none", EmailVerified: false}

	d := CanPost(actor, PostTypeNews, "", false)
	require.False(t, d.Allowed)
	assert.Equal(t, ReasonEmailUnverified, d.Reason)
}

func TestCanPost_NewsRequiresDevBadge(t *testing.T) {
	for _, badge := range []string{"none", "verified", "gold"} {
		actor := Actor{ID: "u1", Badge: badge, EmailVerified: true}
		d := CanPost(actor, PostTypeNews, "", false)
		require.False(t, d.Allowed, "badge %s should not post news", badge)
		assert.Equal(t, ReasonDevOnly, d.Reason)
	}

	dev := Actor{ID: "u1", Badge: "dev", EmailVerified: true}
	assert.True(t, CanPost(dev, PostTypeNews, "", false).Allowed)
}

func TestCanPost_ChannelOwnerOnly(t *testing.T) {
	actor := verifiedActor()

	d := CanPost(actor, PostTypeChannel, "someone-else", false)
	require.False(t, d.Allowed)
	assert.Equal(t, ReasonNotChannelOwner, d.Reason)

	assert.True(t, CanPost(actor, PostTypeChannel, actor.ID, false).Allowed)
}

func TestCanPost_MediaRequiresBadge(t *testing.T) {
	unbadged := Actor{ID: "u1", Badge: "none", EmailVerified: true}

	d := CanPost(unbadged, PostTypeWall, "", true)
	require.False(t, d.Allowed)
	assert.Equal(t, ReasonVerifiedRequired, d.Reason)

	for _, badge := range []string{"verified", "gold", "dev"} {
		actor := Actor{ID: "u1", Badge: badge, EmailVerified: true}
		assert.True(t, CanPost(actor, PostTypeWall, "", true).Allowed,
			"badge %s should allow media", badge)
	}
}

func TestCanPost_MediaCheckRunsLast(t *testing.T) {
	// Unbadged non-owner with media posting to a channel: the ownership
	// rule fires before the media rule.
	actor := Actor{ID: "u1", Badge: "none", EmailVerified: true}
	d := CanPost(actor, PostTypeChannel, "owner", true)
	require.False(t, d.Allowed)
	assert.Equal(t, ReasonNotChannelOwner, d.Reason)
}

func TestCanAccessChannel(t *testing.T) {
	actor := verifiedActor()

	assert.True(t, CanAccessChannel(actor, actor.ID, false).Allowed, "owner is implicit member")
	assert.True(t, CanAccessChannel(actor, "owner", true).Allowed)

	d := CanAccessChannel(actor, "owner", false)
	require.False(t, d.Allowed)
	assert.Equal(t, ReasonAccessDenied, d.Reason)
}

func TestCanSendMessage(t *testing.T) {
	assert.True(t, CanSendMessage(verifiedActor()).Allowed)

	muted := Actor{ID: "u1", Muted: true, EmailVerified: true}
	assert.Equal(t, ReasonMuted, CanSendMessage(muted).Reason)

	unverified := Actor{ID: "u1", EmailVerified: false}
	assert.Equal(t, ReasonEmailUnverified, CanSendMessage(unverified).Reason)
}

func TestDecisionErr_CarriesReasonCode(t *testing.T) {
	d := CanPost(Actor{ID: "u1", Muted: true}, PostTypeWall, "", false)
	err := d.Err()
	require.Error(t, err)
	require.True(t, errors.Is(err, core.ErrForbidden))

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, ReasonMuted, appErr.Code)
}

func TestValidPostType(t *testing.T) {
	assert.True(t, ValidPostType(PostTypeWall))
	assert.True(t, ValidPostType(PostTypeNews))
	assert.True(t, ValidPostType(PostTypeChannel))
	assert.False(t, ValidPostType("story"))
	assert.False(t, ValidPostType(""))
}
