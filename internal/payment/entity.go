// AngelaMos | 2026
// entity.go

package payment

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Payment struct {
	ID               string     `db:"id"                json:"id"`
	UserID           string     `db:"user_id"           json:"user_id"`
	Item             string     `db:"item"              json:"item"`
	AmountCents      int64      `db:"amount_cents"      json:"amount_cents"`
	Status           string     `db:"status"            json:"status"`
	ConfirmationHash string     `db:"confirmation_hash" json:"-"`
	CreatedAt        time.Time  `db:"created_at"        json:"created_at"`
	CompletedAt      *time.Time `db:"completed_at"      json:"completed_at,omitempty"`
}

func (p *Payment) IsCompleted() bool {
	return p.Status == StatusCompleted
}
