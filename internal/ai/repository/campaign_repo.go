package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/craftly-ai/craftly-backend/internal/ai/domain"
)

// CampaignRepo persists campaign generation results. Rows are insert-only;
// the history drawer re-hydrates from the stored content.
type CampaignRepo struct {
	db *pgxpool.Pool
}

func NewCampaignRepo(db *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{db: db}
}

func (r *CampaignRepo) Insert(ctx context.Context, ownerID, prompt, content string) (*domain.CampaignResult, error) {
	const q = `
insert into campaign_results (owner_id, prompt, content)
values ($1, $2, $3::jsonb)
returning id, owner_id, prompt, content::text, created_at;
`
	var res domain.CampaignResult
	err := r.db.QueryRow(ctx, q, ownerID, prompt, content).
		Scan(&res.ID, &res.OwnerID, &res.Prompt, &res.Content, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByOwner returns the caller's campaign history, newest first.
func (r *CampaignRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.CampaignResult, error) {
	const q = `
select id, owner_id, prompt, content::text, created_at
from campaign_results
where owner_id = $1
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.CampaignResult, 0, 16)
	for rows.Next() {
		var res domain.CampaignResult
		if err := rows.Scan(&res.ID, &res.OwnerID, &res.Prompt, &res.Content, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
