package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/journal/core/session"
	"github.com/dmitrymomot/journal/core/user"
	"github.com/dmitrymomot/journal/pkg/sessiontoken"
)

// memUserLoader is a UserLoader backed by a map.
type memUserLoader map[string]user.User

func (m memUserLoader) FindUserByID(_ context.Context, id string) (user.User, error) {
	u, ok := m[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("create then validate round trip", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		users := memUserLoader{"user-1": {ID: "user-1", Username: "dayna"}}
		mgr := session.NewManager(store, users, nil)
		ctx := context.Background()

		created, err := mgr.Create(ctx, "user-1", session.Metadata{})
		require.NoError(t, err)

		identity, err := mgr.Validate(ctx, created.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.Session.UserID)
		assert.Equal(t, created.SessionID, identity.Session.ID)
		assert.Equal(t, "dayna", identity.User.Username)
	})

	t.Run("expired session removed from store on validation", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		users := memUserLoader{"user-1": {ID: "user-1"}}
		mgr := session.NewManager(store, users, nil)
		ctx := context.Background()

		// Seed an already-expired record; Create always issues live
		// sessions, so the store is written to directly.
		token, err := sessiontoken.Generate()
		require.NoError(t, err)
		id := sessiontoken.DeriveID(token)
		require.NoError(t, store.Create(ctx, session.Session{
			ID:        id,
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(-time.Minute),
			CreatedAt: time.Now().Add(-time.Hour),
		}))

		_, err = mgr.Validate(ctx, token)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)

		_, err = store.FindByID(ctx, id)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("invalidate all ends every session for the user", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		users := memUserLoader{"user-1": {ID: "user-1"}}
		mgr := session.NewManager(store, users, nil)
		ctx := context.Background()

		first, err := mgr.Create(ctx, "user-1", session.Metadata{})
		require.NoError(t, err)
		second, err := mgr.Create(ctx, "user-1", session.Metadata{})
		require.NoError(t, err)

		require.NoError(t, mgr.InvalidateAllForUser(ctx, "user-1"))

		_, err = mgr.Validate(ctx, first.Token)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)
		_, err = mgr.Validate(ctx, second.Token)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)
	})

	t.Run("orphaned session removed after user disappears", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		users := memUserLoader{} // user never existed as far as the loader knows
		mgr := session.NewManager(store, users, nil)
		ctx := context.Background()

		created, err := mgr.Create(ctx, "ghost", session.Metadata{})
		require.NoError(t, err)

		_, err = mgr.Validate(ctx, created.Token)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)

		_, err = store.FindByID(ctx, created.SessionID)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("logout then validate is unauthenticated", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		users := memUserLoader{"user-1": {ID: "user-1"}}
		mgr := session.NewManager(store, users, nil)
		ctx := context.Background()

		created, err := mgr.Create(ctx, "user-1", session.Metadata{})
		require.NoError(t, err)

		require.NoError(t, mgr.Invalidate(ctx, created.Token))
		// Idempotent.
		require.NoError(t, mgr.Invalidate(ctx, created.Token))

		_, err = mgr.Validate(ctx, created.Token)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)
	})
}

func TestSession_IsExpired(t *testing.T) {
	t.Parallel()

	assert.False(t, session.Session{ExpiresAt: time.Now().Add(time.Minute)}.IsExpired())
	assert.True(t, session.Session{ExpiresAt: time.Now().Add(-time.Minute)}.IsExpired())
}

func TestSession_Serialize(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour)
	s := session.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: exp, UserAgent: "ua"}

	got := s.Serialize()
	assert.Equal(t, "sess-1", got.ID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, exp, got.ExpiresAt)
}
