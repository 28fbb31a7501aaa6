package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/journal/core/logger"
	"github.com/dmitrymomot/journal/core/server"
	"github.com/dmitrymomot/journal/core/session"
	"github.com/dmitrymomot/journal/core/sessioncookie"
	"github.com/dmitrymomot/journal/core/user"
	"github.com/dmitrymomot/journal/integration/database/mongo"
	"github.com/dmitrymomot/journal/integration/database/pg"
	"github.com/dmitrymomot/journal/integration/database/redis"
	"github.com/dmitrymomot/journal/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		logger.New().Fatal(ctx, "invalid configuration", logger.Err(err))
		os.Exit(1)
	}

	log := logger.NewFromConfig(cfg.Logger)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal(ctx, "server exited with error", logger.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log *logger.Logger) error {
	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.close(log)

	opts := []session.Option{session.WithConfig(cfg.Session)}

	if cfg.App.SessionCache == "redis" {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn(context.Background(), "failed to close redis client", logger.Err(err))
			}
		}()
		opts = append(opts, session.WithCache(redis.NewSessionCache(client)))
		backend.checks = append(backend.checks, redis.Healthcheck(client))
		log.Info(ctx, "session cache enabled", logger.Key("cache", "redis"))
	}

	sessions := session.NewManager(backend.sessions, backend.users, log, opts...)
	cookies := sessioncookie.New(cfg.Cookie)
	h := newHandler(sessions, backend.users, cookies, log)

	mux := http.NewServeMux()
	h.routes(mux, backend.checks...)

	var handler http.Handler = mux
	handler = middleware.Session(sessions, cookies, log)(handler)
	handler = middleware.Logging(log)(handler)
	handler = middleware.RequestContext(handler)

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, handler))

	// Postgres has no native TTL enforcement, so expired sessions are
	// swept here. The memory store runs its own janitor and Mongo has the
	// TTL index.
	if cfg.App.Driver == driverPostgres {
		g.Go(func() error {
			return sweepExpired(ctx, sessions, log, cfg.App.SweepInterval)
		})
	}

	log.Info(ctx, "journal server started",
		logger.Key("addr", cfg.Server.Addr),
		logger.Key("driver", cfg.App.Driver))

	return g.Wait()
}

func sweepExpired(ctx context.Context, sessions *session.Manager, log *logger.Logger, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := sessions.CleanupExpired(ctx); err != nil {
				log.Warn(ctx, "expired session sweep failed", logger.Err(err))
			}
		}
	}
}

// backend bundles the driver-specific stores with their teardown and
// health probes.
type backend struct {
	sessions session.Store
	users    userDirectory
	checks   []func(context.Context) error
	closers  []func(context.Context) error
}

func (b *backend) close(log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, closer := range b.closers {
		if err := closer(ctx); err != nil {
			log.Warn(ctx, "backend shutdown error", logger.Err(err))
		}
	}
}

func openBackend(ctx context.Context, cfg config, log *logger.Logger) (*backend, error) {
	switch cfg.App.Driver {
	case driverMongo:
		db, err := mongo.NewWithDatabase(ctx, cfg.Mongo, cfg.App.DatabaseName)
		if err != nil {
			return nil, err
		}

		sessions := mongo.NewSessionStore(db)
		users := mongo.NewUserStore(db)
		if err := sessions.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			return nil, err
		}

		return &backend{
			sessions: sessions,
			users:    users,
			checks:   []func(context.Context) error{mongo.Healthcheck(db.Client())},
			closers: []func(context.Context) error{
				func(ctx context.Context) error { return db.Client().Disconnect(ctx) },
			},
		}, nil

	case driverPostgres:
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
			pool.Close()
			return nil, err
		}

		return &backend{
			sessions: pg.NewSessionStore(pool),
			users:    pg.NewUserStore(pool),
			checks:   []func(context.Context) error{pg.Healthcheck(pool)},
			closers: []func(context.Context) error{
				func(context.Context) error { pool.Close(); return nil },
			},
		}, nil

	case driverMemory:
		store := session.NewMemoryStore(session.WithSweepInterval(cfg.App.SweepInterval))
		log.Warn(ctx, "using in-memory stores, all state is lost on restart")

		return &backend{
			sessions: store,
			users:    user.NewMemoryStore(),
			closers: []func(context.Context) error{
				func(context.Context) error { store.Close(); return nil },
			},
		}, nil

	default:
		return nil, errUnknownDriver
	}
}
