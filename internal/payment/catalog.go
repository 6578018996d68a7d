// AngelaMos | 2026
// catalog.go

package payment

import (
	"github.com/taremwastudios/billboard/internal/user"
)

// CatalogItem maps a purchasable item to the badge it unlocks. The
// catalog is the only source of badge grants: item names are matched
// exactly, never by substring, so a future "badge_gold_trial" item can
// never accidentally grant gold.
type CatalogItem struct {
	Badge       string
	AmountCents int64
}

var Catalog = map[string]CatalogItem{
	"badge_verified": {Badge: user.BadgeVerified, AmountCents: 499},
	"badge_gold":     {Badge: user.BadgeGold, AmountCents: 1999},
	"badge_dev":      {Badge: user.BadgeDev, AmountCents: 4999},
}

func LookupItem(item string) (CatalogItem, bool) {
	ci, ok := Catalog[item]
	return ci, ok
}
