package session

import (
	"context"
	"time"

	"github.com/dmitrymomot/journal/core/user"
)

// Store defines session persistence. Implementations must handle concurrent
// access safely and must return ErrNotFound (possibly wrapped) from FindByID
// for missing ids. DeleteByID and DeleteAllForUser are idempotent.
type Store interface {
	// Create inserts a session record, replacing any existing record with
	// the same id. Collisions are cryptographically implausible; replacing
	// instead of erroring keeps the operation idempotent.
	Create(ctx context.Context, s Session) error
	FindByID(ctx context.Context, id string) (Session, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	DeleteByID(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
	// DeleteExpired removes all expired sessions and returns the count.
	// Backends with native TTL enforcement (Mongo TTL index, Redis expiry)
	// may treat this as a no-op.
	DeleteExpired(ctx context.Context) (int64, error)
}

// UserLoader resolves the owning user during validation. Implementations
// must return user.ErrNotFound (possibly wrapped) for missing users.
type UserLoader interface {
	FindUserByID(ctx context.Context, id string) (user.User, error)
}

// Cache is an optional read-through cache in front of the Store. Cache
// failures must never fail a request; the manager treats every cache error
// as a miss. DeleteAllForUser exists so global logout takes effect
// immediately instead of waiting for cached entries to expire.
type Cache interface {
	Set(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, bool, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
