package routes

import (
	"launchboard/internal/delivery/http/handler"
	"launchboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every handler and is the one place the HTTP surface is
// defined. A route requires authentication exactly when RequireIdentity
// appears on its registration below; no other auth gating exists.
type Registry struct {
	health   *handler.HealthHandler
	ideas    *handler.IdeaHandler
	profiles *handler.ProfileHandler
	pitch    *handler.PitchHandler
	webhooks *handler.WebhookHandler

	rate *middleware.RateLimiter
}

func NewRegistry(
	ideas *handler.IdeaHandler,
	profiles *handler.ProfileHandler,
	pitch *handler.PitchHandler,
	webhooks *handler.WebhookHandler,
	rate *middleware.RateLimiter,
) *Registry {
	return &Registry{
		health:   handler.NewHealthHandler(),
		ideas:    ideas,
		profiles: profiles,
		pitch:    pitch,
		webhooks: webhooks,
		rate:     rate,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	requireAuth := middleware.RequireIdentity()

	app.Get("/health", r.health.Health)

	app.Get("/ideas", r.ideas.List, r.rate.Middleware())
	app.Get("/ideas/:id", r.ideas.Get)
	app.Post("/ideas", r.ideas.Create, requireAuth)
	app.Patch("/ideas/:id", r.ideas.Update, requireAuth)
	app.Delete("/ideas/:id", r.ideas.Delete, requireAuth)

	app.Get("/profile/:id?", r.profiles.Get)
	app.Patch("/profile", r.profiles.UpdateOwn, requireAuth)

	app.Post("/pitch-copilot", r.pitch.Generate)

	// Authenticated by HMAC signature inside the handler, not a session.
	app.Post("/webhooks/identity", r.webhooks.IdentityEvent)
}
