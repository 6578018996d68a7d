// AngelaMos | 2026
// dto.go

package channel

type CreateChannelRequest struct {
	Name             string `json:"name"               validate:"required,min=3,max=60"`
	Description      string `json:"description"        validate:"omitempty,max=500"`
	AccessPriceCents int64  `json:"access_price_cents" validate:"gte=0"`
}

type JoinResponse struct {
	ChannelID string `json:"channel_id"`
	Status    string `json:"status"`
}
