package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/journal/core/logger"
	"github.com/dmitrymomot/journal/core/user"
	"github.com/dmitrymomot/journal/pkg/sessiontoken"
)

// Manager orchestrates the session lifecycle: creation, validation,
// sliding-window refresh and invalidation. It holds no session state of its
// own; every call round-trips to the Store (optionally through the Cache).
//
// Storage failures are surfaced, never retried here. Retries, if wanted,
// belong to the connection layer.
type Manager struct {
	store            Store
	users            UserLoader
	cache            Cache
	log              *logger.Logger
	lifespan         time.Duration
	refreshThreshold time.Duration
}

// Created is the result of issuing a new session. Token is the only time
// the raw client token ever leaves the server; the caller must place it in
// the session cookie and then forget it.
type Created struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// Identity is the request-facing outcome of a successful validation:
// a sanitized user projection plus the serialized session.
type Identity struct {
	User    user.SafeUser
	Session Serialized
}

// NewManager creates a session manager. A nil log discards manager output.
func NewManager(store Store, users UserLoader, log *logger.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logger.Discard()
	}

	m := &Manager{
		store:            store,
		users:            users,
		log:              log.Child(logger.Component("SessionManager")),
		lifespan:         30 * 24 * time.Hour,
		refreshThreshold: 7 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Lifespan returns the absolute session lifetime.
func (m *Manager) Lifespan() time.Duration {
	return m.lifespan
}

// Create issues a new session for the user: generates a fresh token,
// derives its id and persists the record with an absolute expiry of
// now+lifespan. Entropy failure aborts issuance; storage failure is a hard
// error since the caller (login, registration) cannot pretend success.
func (m *Manager) Create(ctx context.Context, userID string, meta Metadata) (Created, error) {
	token, err := sessiontoken.Generate()
	if err != nil {
		m.log.Error(ctx, "token generation failed", logger.Err(err))
		return Created{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	s := Session{
		ID:        sessiontoken.DeriveID(token),
		UserID:    userID,
		ExpiresAt: now.Add(m.lifespan),
		CreatedAt: now,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
	}

	if err := m.store.Create(ctx, s); err != nil {
		return Created{}, errors.Join(ErrStorage, err)
	}
	m.cacheSet(ctx, s)

	m.log.Info(ctx, "session created",
		logger.SessionID(s.ID),
		logger.UserID(userID),
		logger.Key("expires_at", s.ExpiresAt))

	return Created{Token: token, SessionID: s.ID, ExpiresAt: s.ExpiresAt}, nil
}

// Validate resolves a client token to the owning user and session.
//
// Absent tokens, unknown ids and expired sessions all yield
// ErrUnauthenticated; an expired record is deleted eagerly on the way out.
// A session whose user no longer exists indicates a consistency bug
// elsewhere: it is logged at error level, deleted as self-healing, and
// reported as unauthenticated. Storage faults come back wrapped in
// ErrStorage or ErrUserLookup so the caller can choose its degradation
// policy.
func (m *Manager) Validate(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}

	id := sessiontoken.DeriveID(token)

	s, found, err := m.lookup(ctx, id)
	if err != nil {
		return Identity{}, err
	}
	if !found {
		m.log.Debug(ctx, "session not found, possibly already invalidated",
			logger.SessionID(id))
		return Identity{}, ErrUnauthenticated
	}

	if s.IsExpired() {
		m.log.Warn(ctx, "deleting expired session", logger.SessionID(id))
		m.deleteEverywhere(ctx, s)
		return Identity{}, ErrUnauthenticated
	}

	u, err := m.users.FindUserByID(ctx, s.UserID)
	if errors.Is(err, user.ErrNotFound) {
		// A session pointing at a missing user means a user deletion failed
		// to cascade. Self-heal and report unauthenticated.
		m.log.Error(ctx, "orphaned session: owning user missing",
			logger.SessionID(id),
			logger.UserID(s.UserID))
		m.deleteEverywhere(ctx, s)
		return Identity{}, ErrUnauthenticated
	}
	if err != nil {
		return Identity{}, errors.Join(ErrUserLookup, err)
	}

	return Identity{User: u.Sanitize(), Session: s.Serialize()}, nil
}

// Refresh extends a session's expiry to now+lifespan when less than the
// refresh threshold remains. Sessions with more lifetime left are untouched
// and the second return value is false. A missing session is not an error;
// it simply reports no refresh. Concurrent refreshes of the same session
// race benignly: expiry only ever moves forward from "now".
func (m *Manager) Refresh(ctx context.Context, sessionID string) (time.Time, bool, error) {
	s, err := m.store.FindByID(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, errors.Join(ErrStorage, err)
	}

	if time.Until(s.ExpiresAt) >= m.refreshThreshold {
		return time.Time{}, false, nil
	}

	newExpiry := time.Now().Add(m.lifespan)
	if err := m.store.UpdateExpiry(ctx, sessionID, newExpiry); err != nil {
		return time.Time{}, false, errors.Join(ErrStorage, err)
	}
	s.ExpiresAt = newExpiry
	m.cacheSet(ctx, s)

	m.log.Debug(ctx, "session refreshed",
		logger.SessionID(sessionID),
		logger.Key("expires_at", newExpiry))

	return newExpiry, true, nil
}

// Invalidate deletes the session for the given client token. Idempotent:
// an absent token or already-deleted session is not an error.
func (m *Manager) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	id := sessiontoken.DeriveID(token)
	if err := m.store.DeleteByID(ctx, id); err != nil {
		return errors.Join(ErrStorage, err)
	}
	m.cacheDelete(ctx, id)

	m.log.Info(ctx, "session invalidated", logger.SessionID(id))
	return nil
}

// InvalidateAllForUser deletes every session owned by the user. Used for
// global logout and account-compromise response.
func (m *Manager) InvalidateAllForUser(ctx context.Context, userID string) error {
	count, err := m.store.DeleteAllForUser(ctx, userID)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}

	if m.cache != nil {
		if err := m.cache.DeleteAllForUser(ctx, userID); err != nil {
			m.log.Warn(ctx, "session cache flush failed", logger.Err(err))
		}
	}

	m.log.Info(ctx, "all user sessions invalidated",
		logger.UserID(userID),
		logger.Count("deleted", int(count)))
	return nil
}

// CleanupExpired removes expired sessions from the store. Backends without
// native TTL enforcement should call this periodically so abandoned
// sessions disappear independent of validation traffic.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	count, err := m.store.DeleteExpired(ctx)
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	if count > 0 {
		m.log.Debug(ctx, "expired sessions removed", logger.Count("deleted", int(count)))
	}
	return count, nil
}

// lookup goes through the cache when one is attached; every cache error is
// treated as a miss. Expiry is re-checked by the caller either way, so a
// stale cache entry can never resurrect an expired session.
func (m *Manager) lookup(ctx context.Context, id string) (Session, bool, error) {
	if m.cache != nil {
		if s, ok, err := m.cache.Get(ctx, id); err == nil && ok {
			return s, true, nil
		} else if err != nil {
			m.log.Warn(ctx, "session cache read failed", logger.Err(err))
		}
	}

	s, err := m.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, errors.Join(ErrStorage, err)
	}

	m.cacheSet(ctx, s)
	return s, true, nil
}

func (m *Manager) cacheSet(ctx context.Context, s Session) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Set(ctx, s); err != nil {
		m.log.Warn(ctx, "session cache write failed", logger.Err(err))
	}
}

func (m *Manager) cacheDelete(ctx context.Context, id string) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Delete(ctx, id); err != nil {
		m.log.Warn(ctx, "session cache delete failed", logger.Err(err))
	}
}

// deleteEverywhere removes a session from store and cache, best effort.
// Used on the unauthenticated exit paths where a deletion failure must not
// change the outcome.
func (m *Manager) deleteEverywhere(ctx context.Context, s Session) {
	if err := m.store.DeleteByID(ctx, s.ID); err != nil {
		m.log.Warn(ctx, "session delete failed", logger.SessionID(s.ID), logger.Err(err))
	}
	m.cacheDelete(ctx, s.ID)
}
