package handler_test

import (
	"context"
	"io"
	"log"
	"sort"
	"testing"
	"time"

	"launchboard/internal/config"
	"launchboard/internal/delivery/http/handler"
	"launchboard/internal/delivery/http/middleware"
	"launchboard/internal/delivery/http/routes"
	"launchboard/internal/domain/idea"
	"launchboard/internal/domain/profile"
	"launchboard/internal/pkg/token"
	ideauc "launchboard/internal/usecase/idea"
	profileuc "launchboard/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	testSessionSecret = "test-session-secret"
	testWebhookSecret = "test-webhook-secret"
)

type fakeIdeaRepo struct {
	byID map[uuid.UUID]idea.Idea
	pubs map[string]profile.Public
}

func newFakeIdeaRepo() *fakeIdeaRepo {
	return &fakeIdeaRepo{
		byID: map[uuid.UUID]idea.Idea{},
		pubs: map[string]profile.Public{},
	}
}

func (f *fakeIdeaRepo) put(i idea.Idea, owner profile.Public) {
	f.byID[i.ID] = i
	f.pubs[owner.ID] = owner
}

func (f *fakeIdeaRepo) ListActive(context.Context) ([]idea.WithOwner, error) {
	out := make([]idea.WithOwner, 0)
	for _, i := range f.byID {
		if i.Status != idea.StatusActive {
			continue
		}
		out = append(out, idea.WithOwner{Idea: i, Owner: f.pubs[i.OwnerID]})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (f *fakeIdeaRepo) GetByID(_ context.Context, id uuid.UUID) (idea.Idea, error) {
	i, ok := f.byID[id]
	if !ok {
		return idea.Idea{}, idea.ErrNotFound
	}
	return i, nil
}

func (f *fakeIdeaRepo) Create(_ context.Context, i idea.Idea) error {
	f.byID[i.ID] = i
	return nil
}

func (f *fakeIdeaRepo) Update(_ context.Context, i idea.Idea) error {
	current, ok := f.byID[i.ID]
	if !ok {
		return idea.ErrNotFound
	}
	if current.Status == idea.StatusDeleted {
		return idea.ErrGone
	}
	f.byID[i.ID] = i
	return nil
}

func (f *fakeIdeaRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	current, ok := f.byID[id]
	if !ok {
		return idea.ErrNotFound
	}
	if current.Status == idea.StatusDeleted {
		return idea.ErrGone
	}
	current.Status = idea.StatusDeleted
	f.byID[id] = current
	return nil
}

type fakeProfileRepo struct {
	byID map[string]profile.Profile
}

func newFakeProfileRepo(profiles ...profile.Profile) *fakeProfileRepo {
	f := &fakeProfileRepo{byID: map[string]profile.Profile{}}
	for _, p := range profiles {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (profile.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, p profile.Profile) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p profile.Profile) error {
	if _, ok := f.byID[p.ID]; !ok {
		return profile.ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

// newTestApp assembles the app exactly as bootstrap does, with fake
// repositories and no cache.
func newTestApp(t *testing.T, ideas idea.Repository, profiles profile.Repository, admins map[string]struct{}) *fiber.App {
	t.Helper()

	logger := log.New(io.Discard, "", 0)
	tokens := token.NewHMACService(testSessionSecret)

	ideaUC := ideauc.NewService(ideas, nil, admins, logger)
	profileUC := profileuc.NewService(profiles, logger)

	rl := middleware.NewRateLimiter(config.RateConfig{RequestsPerMinute: 600000, Burst: 600000})
	t.Cleanup(rl.Stop)

	f := fiber.New(fiber.Config{})
	f.Use(middleware.NewErrorMiddleware(logger).Middleware())
	f.Use(middleware.SecurityHeaders())
	f.Use(middleware.NewIdentityMiddleware(tokens).Middleware())

	registry := routes.NewRegistry(
		handler.NewIdeaHandler(ideaUC),
		handler.NewProfileHandler(profileUC),
		handler.NewPitchHandler(),
		handler.NewWebhookHandler(profileUC, testWebhookSecret),
		rl,
	)
	registry.Register(f)

	return f
}

func sessionFor(t *testing.T, ident token.Identity) string {
	t.Helper()
	raw, err := token.NewHMACService(testSessionSecret).Issue(ident, time.Hour)
	if err != nil {
		t.Fatalf("issue session token: %v", err)
	}
	return raw
}
