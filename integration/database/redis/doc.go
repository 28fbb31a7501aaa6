// Package redis provides Redis client initialization and the session
// cache layered in front of the primary session store.
//
// Connect validates the connection URL, retries transient failures, and
// verifies connectivity with a ping before returning the client. Both
// redis:// and rediss:// (TLS) URL schemes are supported.
//
// Basic usage:
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	cache := redis.NewSessionCache(client)
//
// SessionCache entries carry a TTL equal to the session's remaining
// lifetime, and a per-user index set tracks which entries belong to each
// account so a global logout invalidates all of them immediately.
//
// Configuration is handled through environment variables via the Config
// struct:
//
//	REDIS_URL             (default: redis://localhost:6379/0)
//	REDIS_RETRY_ATTEMPTS  (default: 3)
//	REDIS_RETRY_INTERVAL  (default: 5s)
//	REDIS_CONNECT_TIMEOUT (default: 30s)
package redis
