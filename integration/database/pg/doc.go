// Package pg provides PostgreSQL connection management with embedded
// schema migrations, plus the relational stores backing journal accounts
// and sessions.
//
// The pool wrapper adds application-level retry logic on top of pgx so
// that transient network issues during startup do not fail the process.
// Migrations are embedded in the binary and applied with goose; goose
// does not speak pgx natively, so the pool is adapted through
// database/sql for the duration of the migration run.
//
// Basic usage:
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, logger); err != nil {
//		log.Fatal(err)
//	}
//
//	sessions := pg.NewSessionStore(pool)
//	users := pg.NewUserStore(pool)
//
// Configuration is handled through environment variables via the Config
// struct:
//
//	PG_CONN_URL           (required)
//	PG_MAX_OPEN_CONNS     (default: 10)
//	PG_MAX_IDLE_CONNS     (default: 5)
//	PG_HEALTHCHECK_PERIOD (default: 1m)
//	PG_MAX_CONN_IDLE_TIME (default: 10m)
//	PG_MAX_CONN_LIFETIME  (default: 30m)
//	PG_RETRY_ATTEMPTS     (default: 3)
//	PG_RETRY_INTERVAL     (default: 5s)
//	PG_MIGRATIONS_TABLE   (default: schema_migrations)
//
// Error classification helpers translate driver errors into patterns the
// rest of the application matches on:
//
//	pg.IsNotFoundError(err)            // pgx.ErrNoRows
//	pg.IsDuplicateKeyError(err)        // unique constraint violation
//	pg.IsForeignKeyViolationError(err) // referential integrity violation
package pg
