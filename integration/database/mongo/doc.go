// Package mongo provides MongoDB client initialization and the document
// stores backing journal accounts and sessions.
//
// The client wrapper adds application-level retry logic on top of the
// official driver, which absorbs MongoDB Atlas cold starts (5-8 seconds)
// and brief network interruptions that would otherwise fail application
// startup.
//
// Basic usage:
//
//	var cfg mongo.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "journal")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sessions := mongo.NewSessionStore(db)
//	users := mongo.NewUserStore(db)
//	if err := sessions.EnsureIndexes(ctx); err != nil {
//		log.Fatal(err)
//	}
//	if err := users.EnsureIndexes(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// SessionStore keeps the session id as the document _id and maintains a
// TTL index on expiresAt, so the server lets MongoDB reap expired
// sessions in the background while validation still checks expiry
// explicitly (the TTL monitor runs on a coarse schedule).
//
// Configuration is handled through environment variables via the Config
// struct:
//
//	MONGODB_URL                      (required)
//	MONGODB_CONNECT_TIMEOUT          (default: 10s)
//	MONGODB_SERVER_SELECTION_TIMEOUT (default: 5s)
//	MONGODB_MAX_POOL_SIZE            (default: 100)
//	MONGODB_MIN_POOL_SIZE            (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME       (default: 300s)
//	MONGODB_RETRY_WRITES             (default: true)
//	MONGODB_RETRY_READS              (default: true)
//	MONGODB_RETRY_ATTEMPTS           (default: 3)
//	MONGODB_RETRY_INTERVAL           (default: 5s)
//
// Healthcheck returns a probe for readiness endpoints:
//
//	check := mongo.Healthcheck(client)
//	if err := check(r.Context()); err != nil {
//		// report unhealthy
//	}
package mongo
