package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/journal/middleware"
	"github.com/dmitrymomot/journal/pkg/requestctx"
)

func TestRequestContext(t *testing.T) {
	t.Parallel()

	t.Run("establishes context and echoes header", func(t *testing.T) {
		t.Parallel()

		var seen requestctx.Context
		handler := middleware.RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc, ok := requestctx.From(r.Context())
			require.True(t, ok)
			seen = rc
		}))

		r := httptest.NewRequest("POST", "/journals?draft=1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		_, err := uuid.Parse(seen.RequestID)
		require.NoError(t, err)
		assert.Equal(t, "POST", seen.Method)
		assert.Equal(t, "/journals", seen.Path)
		assert.Equal(t, seen.RequestID, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("distinct requests get distinct ids", func(t *testing.T) {
		t.Parallel()

		handler := middleware.RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest("GET", "/", nil))
		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest("GET", "/", nil))

		assert.NotEqual(t,
			first.Header().Get(middleware.RequestIDHeader),
			second.Header().Get(middleware.RequestIDHeader))
	})
}
