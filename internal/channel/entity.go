// AngelaMos | 2026
// entity.go

package channel

import (
	"time"
)

type Channel struct {
	ID               string    `db:"id"                 json:"id"`
	Name             string    `db:"name"               json:"name"`
	Description      string    `db:"description"        json:"description"`
	OwnerID          string    `db:"owner_id"           json:"owner_id"`
	AccessPriceCents int64     `db:"access_price_cents" json:"access_price_cents"`
	CreatedAt        time.Time `db:"created_at"         json:"created_at"`
}

// Summary is a channel row joined with its member count for listings.
type Summary struct {
	ID               string    `db:"id"                 json:"id"`
	Name             string    `db:"name"               json:"name"`
	Description      string    `db:"description"        json:"description"`
	OwnerID          string    `db:"owner_id"           json:"owner_id"`
	OwnerUsername    string    `db:"owner_username"     json:"owner_username"`
	AccessPriceCents int64     `db:"access_price_cents" json:"access_price_cents"`
	MemberCount      int64     `db:"member_count"       json:"member_count"`
	CreatedAt        time.Time `db:"created_at"         json:"created_at"`
}
