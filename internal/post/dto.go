// AngelaMos | 2026
// dto.go

package post

type CreatePostRequest struct {
	Content   string  `json:"content"    validate:"required,max=2000"`
	PostType  string  `json:"post_type"  validate:"required,oneof=wall news channel"`
	ChannelID *string `json:"channel_id" validate:"omitempty,uuid4"`
}

type FeedResponse struct {
	Posts  []FeedItem `json:"posts"`
	NextID *int64     `json:"next_id,omitempty"`
}
