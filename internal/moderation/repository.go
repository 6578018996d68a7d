// AngelaMos | 2026
// repository.go

package moderation

import (
	"context"
	"fmt"

	"github.com/taremwastudios/billboard/internal/core"
)

type Repository interface {
	CreateReport(ctx context.Context, r *Report) error
	ListReports(ctx context.Context) ([]ReportDetail, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReport(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO reports (post_id, reporter_id, reason)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.GetContext(ctx, rep, query, rep.PostID, rep.ReporterID, rep.Reason)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	return nil
}

func (r *repository) ListReports(ctx context.Context) ([]ReportDetail, error) {
	query := `
		SELECT
			rp.id, rp.post_id, rp.reporter_id, rp.reason, rp.created_at,
			p.content AS post_content,
			p.author_id AS post_author_id,
			(p.deleted_at IS NOT NULL) AS post_deleted,
			u.username AS reporter_username
		FROM reports rp
		JOIN posts p ON p.id = rp.post_id
		JOIN users u ON u.id = rp.reporter_id
		ORDER BY rp.created_at DESC`

	reports := []ReportDetail{}
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	return reports, nil
}
