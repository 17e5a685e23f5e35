package profile

import (
	"context"
	"errors"
	"log"
	"strings"

	"launchboard/internal/domain/profile"
	"launchboard/internal/pkg/token"
)

var (
	ErrUnauthorized = errors.New("identity required")
	ErrInvalidID    = errors.New("profile id required")
	ErrInvalidInput = errors.New("invalid input")
	ErrBackend      = errors.New("backend unavailable")
)

type UpdateInput struct {
	DisplayName *string
	Role        *string
	Location    *string
	Company     *string
}

// SyncInput is the provider webhook payload that mirrors a user into the
// store on first sign-in.
type SyncInput struct {
	ID          string
	DisplayName string
}

type Service struct {
	profiles profile.Repository
	logger   *log.Logger
}

func NewService(profiles profile.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{profiles: profiles, logger: logger}
}

// Get validates the id before any store call is made.
func (s *Service) Get(ctx context.Context, id string) (profile.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profile.Profile{}, ErrInvalidID
	}

	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, profile.ErrNotFound
		}
		s.logBackend("get", id, err)
		return profile.Profile{}, ErrBackend
	}
	return p, nil
}

// UpdateOwn mutates only the caller's row; the target id is the verified
// identity, never a request parameter.
func (s *Service) UpdateOwn(ctx context.Context, ident token.Identity, in UpdateInput) (profile.Profile, error) {
	if ident.IsAnonymous() {
		return profile.Profile{}, ErrUnauthorized
	}

	current, err := s.profiles.GetByID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, profile.ErrNotFound
		}
		s.logBackend("update_own", ident.ID, err)
		return profile.Profile{}, ErrBackend
	}

	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return profile.Profile{}, ErrInvalidInput
		}
		current.DisplayName = name
	}
	if in.Role != nil {
		role := profile.Role(strings.TrimSpace(*in.Role))
		if !role.Valid() {
			return profile.Profile{}, ErrInvalidInput
		}
		current.Role = role
	}
	if in.Location != nil {
		current.Location = strings.TrimSpace(*in.Location)
	}
	if in.Company != nil {
		current.Company = strings.TrimSpace(*in.Company)
	}

	if err := s.profiles.Update(ctx, current); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, profile.ErrNotFound
		}
		s.logBackend("update_own", ident.ID, err)
		return profile.Profile{}, ErrBackend
	}
	return current, nil
}

// SyncFromProvider upserts the mirror row for a provider user event.
func (s *Service) SyncFromProvider(ctx context.Context, in SyncInput) error {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return ErrInvalidInput
	}

	p := profile.Profile{
		ID:          id,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Role:        profile.RoleUnset,
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		s.logBackend("sync", id, err)
		return ErrBackend
	}
	return nil
}

func (s *Service) logBackend(op, id string, err error) {
	s.logger.Printf("[Profiles] backend error | op=%s profile=%s err=%v", op, id, err)
}
