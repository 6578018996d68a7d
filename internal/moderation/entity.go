// AngelaMos | 2026
// entity.go

package moderation

import (
	"time"
)

// Report is append-only. The same user reporting the same post twice
// produces two rows; the review queue is the dedupe point.
type Report struct {
	ID         int64     `db:"id"          json:"id"`
	PostID     int64     `db:"post_id"     json:"post_id"`
	ReporterID string    `db:"reporter_id" json:"reporter_id"`
	Reason     string    `db:"reason"      json:"reason"`
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
}

// ReportDetail joins the reported post and the reporter for review.
type ReportDetail struct {
	ID               int64     `db:"id"                json:"id"`
	PostID           int64     `db:"post_id"           json:"post_id"`
	PostContent      string    `db:"post_content"      json:"post_content"`
	PostAuthorID     string    `db:"post_author_id"    json:"post_author_id"`
	PostDeleted      bool      `db:"post_deleted"      json:"post_deleted"`
	ReporterID       string    `db:"reporter_id"       json:"reporter_id"`
	ReporterUsername string    `db:"reporter_username" json:"reporter_username"`
	Reason           string    `db:"reason"            json:"reason"`
	CreatedAt        time.Time `db:"created_at"        json:"created_at"`
}
