package postgres

import (
	"context"
	"database/sql"
	"errors"

	"launchboard/internal/database"
	"launchboard/internal/domain/idea"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IdeaRepository struct {
	db database.DB
}

func NewIdeaRepository(db database.DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

func (r *IdeaRepository) ListActive(ctx context.Context) ([]idea.WithOwner, error) {
	rows, err := r.db.Query(ctx,
		`SELECT i.id, i.owner_id, i.title, COALESCE(i.description, ''), i.status, i.created_at, i.updated_at,
			p.id, COALESCE(p.display_name, ''), p.role, COALESCE(p.company, '')
		 FROM ideas i
		 JOIN profiles p ON p.id = i.owner_id
		 WHERE i.status = $1
		 ORDER BY i.created_at DESC`,
		idea.StatusActive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]idea.WithOwner, 0)
	for rows.Next() {
		var w idea.WithOwner
		err := rows.Scan(
			&w.ID, &w.OwnerID, &w.Title, &w.Description, &w.Status, &w.CreatedAt, &w.UpdatedAt,
			&w.Owner.ID, &w.Owner.DisplayName, &w.Owner.Role, &w.Owner.Company,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *IdeaRepository) GetByID(ctx context.Context, id uuid.UUID) (idea.Idea, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, owner_id, title, COALESCE(description, ''), status, created_at, updated_at
		 FROM ideas
		 WHERE id = $1`,
		id,
	)

	var i idea.Idea
	err := row.Scan(&i.ID, &i.OwnerID, &i.Title, &i.Description, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return idea.Idea{}, idea.ErrNotFound
		}
		return idea.Idea{}, err
	}
	return i, nil
}

func (r *IdeaRepository) Create(ctx context.Context, i idea.Idea) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO ideas (id, owner_id, title, description, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		i.ID, i.OwnerID, i.Title, i.Description, i.Status,
	)
	return err
}

func (r *IdeaRepository) Update(ctx context.Context, i idea.Idea) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE ideas
		 SET title = $2, description = $3, status = $4, updated_at = now()
		 WHERE id = $1 AND status <> $5`,
		i.ID, i.Title, i.Description, i.Status, idea.StatusDeleted,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.classifyMiss(ctx, i.ID)
	}
	return nil
}

func (r *IdeaRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE ideas
		 SET status = $2, updated_at = now()
		 WHERE id = $1 AND status <> $2`,
		id, idea.StatusDeleted,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

// classifyMiss distinguishes an absent row from one the status guard
// filtered out, so callers see NotFound vs already-deleted.
func (r *IdeaRepository) classifyMiss(ctx context.Context, id uuid.UUID) error {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM ideas WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return idea.ErrNotFound
	}
	return idea.ErrGone
}
