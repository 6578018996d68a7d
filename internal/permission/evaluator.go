// AngelaMos | 2026
// evaluator.go

// Package permission centralizes every posting and channel-access rule.
// Checks run in a fixed order and the first failing rule wins, so a
// muted unverified user is always reported as muted, never unverified.
package permission

import (
	"net/http"

	"github.com/taremwastudios/billboard/internal/core"
)

const (
	PostTypeWall    = "wall"
	PostTypeNews    = "news"
	PostTypeChannel = "channel"
)

const (
	ReasonMuted            = "MUTED"
	ReasonEmailUnverified  = "EMAIL_UNVERIFIED"
	ReasonDevOnly          = "DEV_ONLY"
	ReasonNotChannelOwner  = "NOT_CHANNEL_OWNER"
	ReasonVerifiedRequired = "VERIFIED_REQUIRED"
	ReasonAccessDenied     = "ACCESS_DENIED"
)

var reasonMessages = map[string]string{
	ReasonMuted:            "account is muted",
	ReasonEmailUnverified:  "email address is not verified",
	ReasonDevOnly:          "news posts require the dev badge",
	ReasonNotChannelOwner:  "only the channel owner can post here",
	ReasonVerifiedRequired: "media uploads require a badge",
	ReasonAccessDenied:     "channel membership required",
}

// Actor is a snapshot of the requesting user read from the store at
// evaluation time. Token claims are never trusted for these checks
// because mutes and badge changes must take effect immediately.
type Actor struct {
	ID            string
	Badge         string
	Muted         bool
	EmailVerified bool
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanPost evaluates whether the actor may create a post. channelOwnerID
// is only consulted for channel posts and hasMedia triggers the badge
// requirement last, after every other rule has passed.
func CanPost(actor Actor, postType, channelOwnerID string, hasMedia bool) Decision {
	if actor.Muted {
		return deny(ReasonMuted)
	}

	if !actor.EmailVerified {
		return deny(ReasonEmailUnverified)
	}

	switch postType {
	case PostTypeNews:
		if actor.Badge != "dev" {
			return deny(ReasonDevOnly)
		}
	case PostTypeChannel:
		if actor.ID != channelOwnerID {
			return deny(ReasonNotChannelOwner)
		}
	}

	if hasMedia && actor.Badge == "none" {
		return deny(ReasonVerifiedRequired)
	}

	return allow()
}

// CanAccessChannel gates reading a channel feed. The owner is an
// implicit member.
func CanAccessChannel(actor Actor, ownerID string, isMember bool) Decision {
	if actor.ID == ownerID || isMember {
		return allow()
	}
	return deny(ReasonAccessDenied)
}

// CanSendMessage gates direct messages: muted and unverified senders
// are rejected in the same order as posting.
func CanSendMessage(actor Actor) Decision {
	if actor.Muted {
		return deny(ReasonMuted)
	}
	if !actor.EmailVerified {
		return deny(ReasonEmailUnverified)
	}
	return allow()
}

// Err converts a deny decision into the forbidden error carrying the
// machine-readable reason code. Allowed decisions return nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}

	msg, ok := reasonMessages[d.Reason]
	if !ok {
		msg = http.StatusText(http.StatusForbidden)
	}

	return core.ForbiddenReasonError(d.Reason, msg)
}

func ValidPostType(postType string) bool {
	switch postType {
	case PostTypeWall, PostTypeNews, PostTypeChannel:
		return true
	}
	return false
}
