// AngelaMos | 2026
// entity.go

package devapp

import (
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

type Application struct {
	ID         string     `db:"id"          json:"id"`
	UserID     string     `db:"user_id"     json:"user_id"`
	Motivation string     `db:"motivation"  json:"motivation"`
	CertURL    *string    `db:"cert_url"    json:"cert_url,omitempty"`
	Status     string     `db:"status"      json:"status"`
	CreatedAt  time.Time  `db:"created_at"  json:"created_at"`
	ReviewedAt *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
}

// PendingApplication joins the applicant for the review queue.
type PendingApplication struct {
	ID         string    `db:"id"         json:"id"`
	UserID     string    `db:"user_id"    json:"user_id"`
	Username   string    `db:"username"   json:"username"`
	Email      string    `db:"email"      json:"email"`
	Motivation string    `db:"motivation" json:"motivation"`
	CertURL    *string   `db:"cert_url"   json:"cert_url,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
