package middleware

import (
	"net/http"

	"github.com/dmitrymomot/journal/pkg/requestctx"
)

// RequestIDHeader is echoed on every response for client-side correlation.
const RequestIDHeader = "X-Request-ID"

// RequestContext establishes the per-request correlation context before any
// other handling runs. Everything downstream, session validation included,
// sees the same request id via the request's context.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := requestctx.Extract(r)
		w.Header().Set(RequestIDHeader, rc.RequestID)

		ctx := requestctx.With(r.Context(), rc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
