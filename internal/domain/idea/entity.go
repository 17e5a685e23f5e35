package idea

import (
	"time"

	"launchboard/internal/domain/profile"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusDeleted  Status = "deleted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusArchived, StatusDeleted:
		return true
	}
	return false
}

type Idea struct {
	ID          uuid.UUID
	OwnerID     string
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WithOwner is a listing row: the idea plus its owner's public fields.
type WithOwner struct {
	Idea
	Owner profile.Public
}
