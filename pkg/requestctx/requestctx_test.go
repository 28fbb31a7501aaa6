package requestctx_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/journal/pkg/requestctx"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("captures request metadata", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/journals/42/entries?draft=1", nil)
		r.RemoteAddr = "192.0.2.10:5555"
		r.Header.Set("User-Agent", "test-agent/1.0")

		rc := requestctx.Extract(r)

		assert.Equal(t, "POST", rc.Method)
		assert.Equal(t, "/journals/42/entries", rc.Path)
		assert.Equal(t, "draft=1", rc.Query)
		assert.Equal(t, "192.0.2.10", rc.IP)
		assert.Equal(t, "test-agent/1.0", rc.UserAgent)
		assert.Empty(t, rc.UserID)
		assert.Empty(t, rc.SessionID)

		_, err := uuid.Parse(rc.RequestID)
		require.NoError(t, err)
	})

	t.Run("prefers forwarded-for header", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")

		assert.Equal(t, "203.0.113.7", requestctx.Extract(r).IP)
	})

	t.Run("unique request ids", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		first := requestctx.Extract(r)
		second := requestctx.Extract(r)
		assert.NotEqual(t, first.RequestID, second.RequestID)
	})
}

func TestWithFrom(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		rc := requestctx.Context{RequestID: "req-1", UserID: "user-1"}
		ctx := requestctx.With(context.Background(), rc)

		got, ok := requestctx.From(ctx)
		require.True(t, ok)
		assert.Equal(t, rc, got)
	})

	t.Run("absent context", func(t *testing.T) {
		t.Parallel()

		_, ok := requestctx.From(context.Background())
		assert.False(t, ok)
	})
}

func TestChild(t *testing.T) {
	t.Parallel()

	t.Run("layers fields without mutating parent", func(t *testing.T) {
		t.Parallel()

		parent := requestctx.With(context.Background(), requestctx.Context{
			RequestID: "req-1",
			UserID:    "user-1",
			Fields:    map[string]string{"service": "http"},
		})

		child := requestctx.Child(parent, requestctx.Context{
			UserID: "user-2",
			Fields: map[string]string{"service": "SessionManager", "op": "validate"},
		})

		got, ok := requestctx.From(child)
		require.True(t, ok)
		assert.Equal(t, "req-1", got.RequestID)
		assert.Equal(t, "user-2", got.UserID)
		assert.Equal(t, "SessionManager", got.Fields["service"])
		assert.Equal(t, "validate", got.Fields["op"])

		// Parent scope still sees the original values.
		orig, ok := requestctx.From(parent)
		require.True(t, ok)
		assert.Equal(t, "user-1", orig.UserID)
		assert.Equal(t, "http", orig.Fields["service"])
		assert.NotContains(t, orig.Fields, "op")
	})

	t.Run("child without parent starts fresh", func(t *testing.T) {
		t.Parallel()

		ctx := requestctx.Child(context.Background(), requestctx.Context{RequestID: "req-9"})

		got, ok := requestctx.From(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-9", got.RequestID)
	})
}

// TestConcurrentIsolation simulates two interleaved requests and verifies
// that neither ever observes the other's request id.
func TestConcurrentIsolation(t *testing.T) {
	t.Parallel()

	const iterations = 200

	var wg sync.WaitGroup
	for _, id := range []string{"req-a", "req-b"} {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx := requestctx.With(context.Background(), requestctx.Context{RequestID: id})
			for range iterations {
				// Yield so the scheduler interleaves the two workers.
				time.Sleep(time.Microsecond)

				rc, ok := requestctx.From(ctx)
				require.True(t, ok)
				require.Equal(t, id, rc.RequestID)

				// Derived scopes stay isolated too.
				child := requestctx.Child(ctx, requestctx.Context{
					Fields: map[string]string{"worker": id},
				})
				got, ok := requestctx.From(child)
				require.True(t, ok)
				require.Equal(t, id, got.RequestID)
			}
		}()
	}
	wg.Wait()
}
