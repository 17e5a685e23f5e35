package app

import (
	"fmt"
	"strings"

	"launchboard/internal/config"
	"launchboard/internal/delivery/http/middleware"
	"launchboard/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

// Middleware order: error normalization outermost so it also covers the
// other middleware, then the fixed header set, then identity resolution
// so the access log can attribute the request.
func registerGlobalMiddleware(f *fiber.App, c *Container) {
	errMw := middleware.NewErrorMiddleware(c.Logger)
	identityMw := middleware.NewIdentityMiddleware(c.Tokens)
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)

	f.Use(errMw.Middleware())
	f.Use(middleware.SecurityHeaders())
	f.Use(identityMw.Middleware())
	f.Use(accessMw.Middleware())
}

func registerRoutes(f *fiber.App, c *Container) {
	registry := routes.NewRegistry(
		c.IdeaHandler,
		c.ProfileHandler,
		c.PitchHandler,
		c.WebhookHandler,
		c.RateLimiter,
	)
	registry.Register(f)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
