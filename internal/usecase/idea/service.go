package idea

import (
	"context"
	"errors"
	"log"
	"strings"

	"launchboard/internal/domain/idea"
	"launchboard/internal/pkg/token"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("identity required")
	ErrForbidden    = errors.New("not the owner")
	ErrInvalidInput = errors.New("invalid input")
	ErrBackend      = errors.New("backend unavailable")
)

const listCacheKey = "ideas:active"

// Cache is the slice of the cache layer the listing uses. A nil Cache
// disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

type CreateInput struct {
	Title       string
	Description string
}

type UpdateInput struct {
	Title       *string
	Description *string
	Status      *string
}

// Service gates every idea operation on the verified identity. Owner ids
// are derived exclusively from that identity; nothing here accepts an
// owner from request parameters.
type Service struct {
	ideas  idea.Repository
	cache  Cache
	admins map[string]struct{}
	logger *log.Logger
}

func NewService(ideas idea.Repository, cache Cache, admins map[string]struct{}, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{ideas: ideas, cache: cache, admins: admins, logger: logger}
}

func (s *Service) ListActive(ctx context.Context) ([]idea.WithOwner, error) {
	if s.cache != nil {
		var cached []idea.WithOwner
		if ok, err := s.cache.GetJSON(ctx, listCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, err := s.ideas.ListActive(ctx)
	if err != nil {
		s.logBackend("list_active", token.Anonymous, err)
		return nil, ErrBackend
	}
	if items == nil {
		items = []idea.WithOwner{}
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, listCacheKey, items)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (idea.Idea, error) {
	i, err := s.ideas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, idea.ErrNotFound) {
			return idea.Idea{}, idea.ErrNotFound
		}
		s.logBackend("get", token.Anonymous, err)
		return idea.Idea{}, ErrBackend
	}
	// Soft-deleted rows stay in the store but are gone from the surface.
	if i.Status == idea.StatusDeleted {
		return idea.Idea{}, idea.ErrNotFound
	}
	return i, nil
}

func (s *Service) Create(ctx context.Context, ident token.Identity, in CreateInput) (idea.Idea, error) {
	if ident.IsAnonymous() {
		return idea.Idea{}, ErrUnauthorized
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return idea.Idea{}, ErrInvalidInput
	}

	i := idea.Idea{
		ID:          uuid.New(),
		OwnerID:     ident.ID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      idea.StatusActive,
	}
	if err := s.ideas.Create(ctx, i); err != nil {
		s.logBackend("create", ident, err)
		return idea.Idea{}, ErrBackend
	}

	s.invalidateList(ctx)
	return i, nil
}

func (s *Service) Update(ctx context.Context, ident token.Identity, id uuid.UUID, in UpdateInput) (idea.Idea, error) {
	if ident.IsAnonymous() {
		return idea.Idea{}, ErrUnauthorized
	}

	current, err := s.ideas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, idea.ErrNotFound) {
			return idea.Idea{}, idea.ErrNotFound
		}
		s.logBackend("update", ident, err)
		return idea.Idea{}, ErrBackend
	}
	if current.Status == idea.StatusDeleted {
		return idea.Idea{}, idea.ErrGone
	}
	if !s.mayMutate(ident, current) {
		return idea.Idea{}, ErrForbidden
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return idea.Idea{}, ErrInvalidInput
		}
		current.Title = title
	}
	if in.Description != nil {
		current.Description = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		next := idea.Status(strings.TrimSpace(*in.Status))
		// Deletion has its own operation; updates only move between the
		// visible states.
		if next != idea.StatusActive && next != idea.StatusArchived {
			return idea.Idea{}, ErrInvalidInput
		}
		current.Status = next
	}

	if err := s.ideas.Update(ctx, current); err != nil {
		if errors.Is(err, idea.ErrNotFound) || errors.Is(err, idea.ErrGone) {
			return idea.Idea{}, err
		}
		s.logBackend("update", ident, err)
		return idea.Idea{}, ErrBackend
	}

	s.invalidateList(ctx)
	return current, nil
}

func (s *Service) Delete(ctx context.Context, ident token.Identity, id uuid.UUID) error {
	if ident.IsAnonymous() {
		return ErrUnauthorized
	}

	current, err := s.ideas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, idea.ErrNotFound) {
			return idea.ErrNotFound
		}
		s.logBackend("delete", ident, err)
		return ErrBackend
	}
	if current.Status == idea.StatusDeleted {
		return idea.ErrGone
	}
	if !s.mayMutate(ident, current) {
		return ErrForbidden
	}

	if err := s.ideas.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, idea.ErrNotFound) || errors.Is(err, idea.ErrGone) {
			return err
		}
		s.logBackend("delete", ident, err)
		return ErrBackend
	}

	s.invalidateList(ctx)
	return nil
}

func (s *Service) mayMutate(ident token.Identity, i idea.Idea) bool {
	if ident.ID == i.OwnerID {
		return true
	}
	return s.isAdmin(ident)
}

func (s *Service) isAdmin(ident token.Identity) bool {
	if ident.Admin {
		return true
	}
	_, ok := s.admins[ident.ID]
	return ok
}

func (s *Service) invalidateList(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, listCacheKey)
	}
}

func (s *Service) logBackend(op string, ident token.Identity, err error) {
	s.logger.Printf("[Ideas] backend error | op=%s identity=%s err=%v", op, ident.ID, err)
}
