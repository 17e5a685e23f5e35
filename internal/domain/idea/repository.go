package idea

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("idea not found")
	// ErrGone marks a row whose status is already deleted.
	ErrGone = errors.New("idea already deleted")
)

type Repository interface {
	// ListActive returns active ideas joined with owner public fields,
	// newest first.
	ListActive(ctx context.Context) ([]WithOwner, error)
	GetByID(ctx context.Context, id uuid.UUID) (Idea, error)
	Create(ctx context.Context, i Idea) error
	Update(ctx context.Context, i Idea) error
	// SoftDelete transitions the row to deleted. Absent row: ErrNotFound.
	// Already-deleted row: ErrGone. The row is never removed.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
