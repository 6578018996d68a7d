// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Code  string `json:"code"  validate:"required,len=7,numeric"`
}

type UpdateProfileRequest struct {
	Bio      *string `json:"bio"       validate:"omitempty,max=500"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	Phone    *string `json:"phone"     validate:"omitempty,max=32"`
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	Bio       string    `json:"bio"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Badge     string    `json:"badge"`
	IsMuted   bool      `json:"is_muted"`
	CreatedAt time.Time `json:"created_at"`
}

type MeResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	FullName        string    `json:"full_name,omitempty"`
	Bio             string    `json:"bio"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	Role            string    `json:"role"`
	Badge           string    `json:"badge"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

func (u *User) ToProfile() *ProfileResponse {
	return &ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Badge:     u.Badge,
		IsMuted:   u.IsMuted,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) ToMe() *MeResponse {
	return &MeResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Phone:           u.Phone,
		FullName:        u.FullName,
		Bio:             u.Bio,
		AvatarURL:       u.AvatarURL,
		Role:            u.Role,
		Badge:           u.Badge,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}
