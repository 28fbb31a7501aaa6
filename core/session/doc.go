// Package session implements server-side session lifecycle management with
// hashed token identifiers.
//
// The client holds an opaque random token; the server stores only the
// SHA-256 hash of that token, which doubles as the session's primary key.
// Validation derives the hash from the presented token, loads the record,
// enforces absolute expiry and resolves the owning user into a sanitized
// projection.
//
// Sessions live for a fixed lifespan (30 days by default) with a sliding
// refresh window: a validated session with less than the refresh threshold
// (7 days) remaining is extended back to the full lifespan. Active users
// stay logged in; an unused token still dies deterministically at its
// expiry ceiling.
//
// The Manager delegates persistence to a Store (Mongo, Postgres or the
// in-memory store in this package) and user resolution to a UserLoader.
// An optional Cache short-circuits reads; all cache failures degrade to
// store reads.
//
//	mgr := session.NewManager(store, users, log)
//	created, err := mgr.Create(ctx, userID, session.Metadata{IPAddress: ip})
//	// hand created.Token to the client via cookie
//
//	identity, err := mgr.Validate(ctx, tokenFromCookie)
//	if errors.Is(err, session.ErrUnauthenticated) {
//		// treat request as logged out
//	}
package session
