package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/journal/core/logger"
	"github.com/dmitrymomot/journal/core/server"
	"github.com/dmitrymomot/journal/core/session"
	"github.com/dmitrymomot/journal/core/sessioncookie"
	"github.com/dmitrymomot/journal/integration/database/mongo"
	"github.com/dmitrymomot/journal/integration/database/pg"
	"github.com/dmitrymomot/journal/integration/database/redis"
)

// Database drivers selectable via DB_DRIVER.
const (
	driverMongo    = "mongo"
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

var errUnknownDriver = errors.New("unknown DB_DRIVER")

type appConfig struct {
	// Driver selects the primary store backend. The memory driver exists
	// for local development; it loses all state on restart.
	Driver string `env:"DB_DRIVER" envDefault:"mongo"`

	// SessionCache enables the optional read-through cache ("redis" or
	// empty).
	SessionCache string `env:"SESSION_CACHE" envDefault:""`

	// DatabaseName names the mongo database; ignored for postgres.
	DatabaseName string `env:"DB_NAME" envDefault:"journal"`

	// SweepInterval drives the background expired-session sweep for
	// backends without native TTL enforcement.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1h"`
}

type config struct {
	App     appConfig
	Logger  logger.Config
	Server  server.Config
	Session session.Config
	Cookie  sessioncookie.Config
	Mongo   mongo.Config
	PG      pg.Config
	Redis   redis.Config
}

// loadConfig reads .env when present, then parses every component config
// from the environment. Backend configs are parsed lazily so a mongo
// deployment does not need PG_CONN_URL set.
func loadConfig() (config, error) {
	_ = godotenv.Load()

	var cfg config
	for name, target := range map[string]any{
		"app":     &cfg.App,
		"logger":  &cfg.Logger,
		"server":  &cfg.Server,
		"session": &cfg.Session,
		"cookie":  &cfg.Cookie,
	} {
		if err := env.Parse(target); err != nil {
			return config{}, fmt.Errorf("parse %s config: %w", name, err)
		}
	}

	switch cfg.App.Driver {
	case driverMongo:
		if err := env.Parse(&cfg.Mongo); err != nil {
			return config{}, fmt.Errorf("parse mongo config: %w", err)
		}
	case driverPostgres:
		if err := env.Parse(&cfg.PG); err != nil {
			return config{}, fmt.Errorf("parse postgres config: %w", err)
		}
	case driverMemory:
	default:
		return config{}, fmt.Errorf("%w: %q", errUnknownDriver, cfg.App.Driver)
	}

	if cfg.App.SessionCache == "redis" {
		if err := env.Parse(&cfg.Redis); err != nil {
			return config{}, fmt.Errorf("parse redis config: %w", err)
		}
	}

	return cfg, nil
}
