package postgres

import (
	"context"
	"database/sql"
	"errors"

	"launchboard/internal/database"
	"launchboard/internal/domain/profile"

	"github.com/jackc/pgx/v5"
)

type ProfileRepository struct {
	db database.DB
}

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(display_name, ''), role, COALESCE(location, ''), COALESCE(company, ''), created_at, updated_at
		 FROM profiles
		 WHERE id = $1`,
		id,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, display_name, role, location, company)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			updated_at = now()`,
		p.ID, p.DisplayName, p.Role, p.Location, p.Company,
	)
	return err
}

func (r *ProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE profiles
		 SET display_name = $2, role = $3, location = $4, company = $5, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.DisplayName, p.Role, p.Location, p.Company,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(&p.ID, &p.DisplayName, &p.Role, &p.Location, &p.Company, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}
