package profile

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	// Upsert creates the mirror row on first sign-in and refreshes it on
	// later provider events.
	Upsert(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error
}
