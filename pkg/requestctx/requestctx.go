package requestctx

import (
	"context"
	"maps"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/journal/pkg/clientip"
)

// ctxKey is an unexported key type to avoid context key collisions.
type ctxKey struct{}

// Context holds per-request correlation data. It travels on the request's
// context.Context and is attached to every log entry emitted while the
// request is being handled.
type Context struct {
	RequestID string
	Method    string
	Path      string
	Query     string

	// Identity fields, populated once session validation resolves.
	UserID    string
	Username  string
	SessionID string

	// Client metadata.
	IP        string
	UserAgent string

	// Fields carries additional correlation attributes set by child scopes.
	Fields map[string]string
}

// Extract builds a fresh request context from an inbound HTTP request.
// The request id is always newly generated; identity fields stay empty
// until session validation fills them in.
func Extract(r *http.Request) Context {
	return Context{
		RequestID: uuid.NewString(),
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		IP:        clientip.GetIP(r),
		UserAgent: r.Header.Get("User-Agent"),
	}
}

// With returns a new context carrying rc. The value is stored by value,
// so later mutations of rc do not leak into the stored copy.
func With(ctx context.Context, rc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// From extracts the request context. The second return value is false when
// no request context is active (background jobs, tests).
func From(ctx context.Context) (Context, bool) {
	rc, ok := ctx.Value(ctxKey{}).(Context)
	return rc, ok
}

// Child derives a context whose request context is the parent's merged with
// overrides: non-empty override fields win, Fields entries are layered on
// top of the parent's. The parent context is left untouched, so code running
// outside the child scope keeps seeing the original values.
func Child(ctx context.Context, overrides Context) context.Context {
	parent, _ := From(ctx)
	return With(ctx, merge(parent, overrides))
}

func merge(parent, child Context) Context {
	out := parent
	if child.RequestID != "" {
		out.RequestID = child.RequestID
	}
	if child.Method != "" {
		out.Method = child.Method
	}
	if child.Path != "" {
		out.Path = child.Path
	}
	if child.Query != "" {
		out.Query = child.Query
	}
	if child.UserID != "" {
		out.UserID = child.UserID
	}
	if child.Username != "" {
		out.Username = child.Username
	}
	if child.SessionID != "" {
		out.SessionID = child.SessionID
	}
	if child.IP != "" {
		out.IP = child.IP
	}
	if child.UserAgent != "" {
		out.UserAgent = child.UserAgent
	}
	if len(child.Fields) > 0 {
		merged := make(map[string]string, len(parent.Fields)+len(child.Fields))
		maps.Copy(merged, parent.Fields)
		maps.Copy(merged, child.Fields)
		out.Fields = merged
	}
	return out
}
