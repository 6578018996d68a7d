// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	BadgeNone     = "none"
	BadgeVerified = "verified"
	BadgeGold     = "gold"
	BadgeDev      = "dev"
)

// ValidBadges is the closed set of badges a payment or an admin action
// may grant. Anything outside it is rejected at the edge.
var ValidBadges = map[string]bool{
	BadgeVerified: true,
	BadgeGold:     true,
	BadgeDev:      true,
}

type User struct {
	ID               string     `db:"id"             json:"id"`
	Username         string     `db:"username"       json:"username"`
	Email            string     `db:"email"          json:"email"`
	PasswordHash     string     `db:"password_hash"  json:"-"`
	Phone            string     `db:"phone"          json:"phone,omitempty"`
	FullName         string     `db:"full_name"      json:"full_name,omitempty"`
	HomeAddress      string     `db:"home_address"   json:"-"`
	Bio              string     `db:"bio"            json:"bio"`
	AvatarURL        *string    `db:"avatar_url"     json:"avatar_url,omitempty"`
	Role             string     `db:"role"           json:"role"`
	Badge            string     `db:"badge"          json:"badge"`
	IsMuted          bool       `db:"is_muted"       json:"is_muted"`
	IsEmailVerified  bool       `db:"is_email_verified" json:"is_email_verified"`
	VerificationCode *string    `db:"verification_code" json:"-"`
	TokenVersion     int        `db:"token_version"  json:"-"`
	CreatedAt        time.Time  `db:"created_at"     json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"     json:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"     json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasDevBadge() bool {
	return u.Badge == BadgeDev
}
