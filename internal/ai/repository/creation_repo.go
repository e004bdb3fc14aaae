package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/craftly-ai/craftly-backend/internal/ai/domain"
)

// CreationRepo persists generation results.
type CreationRepo struct {
	db *pgxpool.Pool
}

func NewCreationRepo(db *pgxpool.Pool) *CreationRepo {
	return &CreationRepo{db: db}
}

func (r *CreationRepo) Insert(ctx context.Context, ownerID, toolType, prompt, content string, published bool) (*domain.Creation, error) {
	const q = `
insert into creations (owner_id, tool_type, prompt, content, published)
values ($1, $2, $3, $4, $5)
returning id, owner_id, tool_type, prompt, content, published, likes, created_at;
`
	var c domain.Creation
	err := r.db.QueryRow(ctx, q, ownerID, toolType, prompt, content, published).
		Scan(&c.ID, &c.OwnerID, &c.ToolType, &c.Prompt, &c.Content, &c.Published, &c.Likes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByOwner returns all of a user's creations, newest first.
func (r *CreationRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Creation, error) {
	const q = `
select id, owner_id, tool_type, prompt, content, published, likes, created_at
from creations
where owner_id = $1
order by created_at desc;
`
	return r.query(ctx, q, ownerID)
}

// ListPublished returns every published creation across all owners,
// newest first.
func (r *CreationRepo) ListPublished(ctx context.Context) ([]domain.Creation, error) {
	const q = `
select id, owner_id, tool_type, prompt, content, published, likes, created_at
from creations
where published = true
order by created_at desc;
`
	return r.query(ctx, q)
}

// ToggleLike adds the user to the creation's likes if absent, removes them
// otherwise. Returns the updated creation and whether it is now liked.
func (r *CreationRepo) ToggleLike(ctx context.Context, id, userID string) (*domain.Creation, bool, error) {
	const q = `
update creations
set likes = case
	when $2 = any(likes) then array_remove(likes, $2)
	else array_append(likes, $2)
end
where id = $1
returning id, owner_id, tool_type, prompt, content, published, likes, created_at;
`
	var c domain.Creation
	err := r.db.QueryRow(ctx, q, id, userID).
		Scan(&c.ID, &c.OwnerID, &c.ToolType, &c.Prompt, &c.Content, &c.Published, &c.Likes, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, domain.ErrNotFound
	}
	if err != nil {
		return nil, false, err
	}

	liked := false
	for _, uid := range c.Likes {
		if uid == userID {
			liked = true
			break
		}
	}
	return &c, liked, nil
}

// TogglePublish flips the published flag on a creation owned by userID.
func (r *CreationRepo) TogglePublish(ctx context.Context, id, userID string) (*domain.Creation, error) {
	const q = `
update creations
set published = not published
where id = $1 and owner_id = $2
returning id, owner_id, tool_type, prompt, content, published, likes, created_at;
`
	var c domain.Creation
	err := r.db.QueryRow(ctx, q, id, userID).
		Scan(&c.ID, &c.OwnerID, &c.ToolType, &c.Prompt, &c.Content, &c.Published, &c.Likes, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CreationRepo) query(ctx context.Context, q string, args ...any) ([]domain.Creation, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Creation, 0, 16)
	for rows.Next() {
		var c domain.Creation
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.ToolType, &c.Prompt, &c.Content, &c.Published, &c.Likes, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
