package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Rate     RateConfig
}

type AppConfig struct {
	AppName        string
	Environment    string
	HTTPPort       string
	MigrateOnStart bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

// AuthConfig carries the session-token verification material and the
// admin allow-list. AdminIDs is resolved once here and injected into the
// authorization check; nothing reads it from package-level state.
type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	WebhookSecret string
	AdminIDs      []string
}

type CacheConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type RateConfig struct {
	RequestsPerMinute int
	Burst             int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:        req("APP_NAME"),
		Environment:    req("APP_ENV"),
		HTTPPort:       req("HTTP_PORT"),
		MigrateOnStart: parseBool(opt("MIGRATE_ON_START")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        parseDuration(opt("DB_CONNECT_TIMEOUT"), 0),
		PoolMaxConns:          int32(parseInt(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(parseInt(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   parseDuration(opt("DB_POOL_MAX_CONN_LIFETIME"), 0),
		PoolMaxConnIdleTime:   parseDuration(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 0),
		PoolHealthCheckPeriod: parseDuration(opt("DB_POOL_HEALTH_CHECK_PERIOD"), 0),
	}

	cfg.Auth = AuthConfig{
		SessionSecret: req("SESSION_SECRET"),
		SessionTTL:    parseDuration(opt("SESSION_TTL"), 24*time.Hour),
		WebhookSecret: opt("IDENTITY_WEBHOOK_SECRET"),
		AdminIDs:      splitList(opt("ADMIN_IDS")),
	}

	cfg.Cache = CacheConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      parseDuration(opt("REDIS_TTL"), 10*time.Minute),
	}

	cfg.Rate = RateConfig{
		RequestsPerMinute: parseInt(opt("RATE_REQUESTS_PER_MINUTE"), 120),
		Burst:             parseInt(opt("RATE_BURST"), 60),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// AdminSet returns the allow-list as a membership set.
func (a AuthConfig) AdminSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.AdminIDs))
	for _, id := range a.AdminIDs {
		set[id] = struct{}{}
	}
	return set
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func parseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err == nil {
		return d
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}
