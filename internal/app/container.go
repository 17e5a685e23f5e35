package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"launchboard/internal/config"
	"launchboard/internal/database"
	"launchboard/internal/database/migration"
	dbpostgres "launchboard/internal/database/postgres"
	"launchboard/internal/delivery/http/handler"
	"launchboard/internal/delivery/http/middleware"
	"launchboard/internal/infrastructure/cache"
	"launchboard/internal/infrastructure/persistence/postgres"
	"launchboard/internal/pkg/token"
	ideauc "launchboard/internal/usecase/idea"
	profileuc "launchboard/internal/usecase/profile"
)

// Container wires the object graph once at process start.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis

	Tokens token.Service

	Ideas    *ideauc.Service
	Profiles *profileuc.Service

	IdeaHandler    *handler.IdeaHandler
	ProfileHandler *handler.ProfileHandler
	PitchHandler   *handler.PitchHandler
	WebhookHandler *handler.WebhookHandler

	RateLimiter *middleware.RateLimiter
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.App.MigrateOnStart {
		if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Cache, logger),
		Tokens: token.NewHMACService(cfg.Auth.SessionSecret),
	}

	ideaRepo := postgres.NewIdeaRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	c.Ideas = ideauc.NewService(ideaRepo, c.Cache, cfg.Auth.AdminSet(), logger)
	c.Profiles = profileuc.NewService(profileRepo, logger)

	c.IdeaHandler = handler.NewIdeaHandler(c.Ideas)
	c.ProfileHandler = handler.NewProfileHandler(c.Profiles)
	c.PitchHandler = handler.NewPitchHandler()
	c.WebhookHandler = handler.NewWebhookHandler(c.Profiles, cfg.Auth.WebhookSecret)

	c.RateLimiter = middleware.NewRateLimiter(cfg.Rate)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.RateLimiter != nil {
		c.RateLimiter.Stop()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
