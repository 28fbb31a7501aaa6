package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/journal/core/session"
)

func newTestStore(t *testing.T) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore(session.WithSweepInterval(0))
	t.Cleanup(store.Close)
	return store
}

func TestMemoryStore_CRUD(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	s := session.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}

	require.NoError(t, store.Create(ctx, s))

	got, err := store.FindByID(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)

	newExpiry := time.Now().Add(2 * time.Hour)
	require.NoError(t, store.UpdateExpiry(ctx, "sess-1", newExpiry))
	got, err = store.FindByID(ctx, "sess-1")
	require.NoError(t, err)
	assert.WithinDuration(t, newExpiry, got.ExpiresAt, time.Second)

	require.NoError(t, store.DeleteByID(ctx, "sess-1"))
	_, err = store.FindByID(ctx, "sess-1")
	assert.ErrorIs(t, err, session.ErrNotFound)

	// Idempotent delete.
	require.NoError(t, store.DeleteByID(ctx, "sess-1"))
}

func TestMemoryStore_CreateReplaces(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, session.Session{ID: "sess-1", UserID: "user-1"}))
	require.NoError(t, store.Create(ctx, session.Session{ID: "sess-1", UserID: "user-2"}))

	got, err := store.FindByID(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "user-2", got.UserID)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_DeleteAllForUser(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	exp := time.Now().Add(time.Hour)
	require.NoError(t, store.Create(ctx, session.Session{ID: "a", UserID: "user-1", ExpiresAt: exp}))
	require.NoError(t, store.Create(ctx, session.Session{ID: "b", UserID: "user-1", ExpiresAt: exp}))
	require.NoError(t, store.Create(ctx, session.Session{ID: "c", UserID: "user-2", ExpiresAt: exp}))

	count, err := store.DeleteAllForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = store.FindByID(ctx, "a")
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.FindByID(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, session.Session{
		ID: "live", UserID: "u", ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, store.Create(ctx, session.Session{
		ID: "dead", UserID: "u", ExpiresAt: time.Now().Add(-time.Minute),
	}))

	count, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = store.FindByID(ctx, "dead")
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.FindByID(ctx, "live")
	assert.NoError(t, err)
}

// TestMemoryStore_Janitor verifies the sweep runs without validation traffic.
func TestMemoryStore_Janitor(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(session.WithSweepInterval(10 * time.Millisecond))
	t.Cleanup(store.Close)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, session.Session{
		ID: "abandoned", UserID: "u", ExpiresAt: time.Now().Add(-time.Minute),
	}))

	assert.Eventually(t, func() bool {
		_, err := store.FindByID(ctx, "abandoned")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}
