package logger

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/journal/pkg/requestctx"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info(ctx, "msg", logger.Error(err)) without
// explicit nil checks, following the principle of making zero values useful.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// RequestID creates an attribute for HTTP request IDs.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// UserID creates an attribute for user identifiers.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// SessionID creates an attribute for session identifiers.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	if method == "" {
		return slog.Attr{}
	}
	return slog.String("method", method)
}

// Path creates an attribute for URL paths.
func Path(path string) slog.Attr {
	if path == "" {
		return slog.Attr{}
	}
	return slog.String("path", path)
}

// StatusCode creates an attribute for HTTP status codes.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// ClientIP creates an attribute for client IP addresses.
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// UserAgent creates an attribute for user agent strings.
func UserAgent(ua string) slog.Attr {
	if ua == "" {
		return slog.Attr{}
	}
	return slog.String("user_agent", ua)
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// contextAttrs renders the non-empty request context fields as attributes.
// Empty fields yield empty Attrs which add filters out, so unauthenticated
// requests carry no user_id or session_id keys at all.
func contextAttrs(rc requestctx.Context) []slog.Attr {
	attrs := make([]slog.Attr, 0, 9+len(rc.Fields))
	add := func(a slog.Attr) {
		if a.Key != "" {
			attrs = append(attrs, a)
		}
	}

	add(RequestID(rc.RequestID))
	add(Method(rc.Method))
	add(Path(rc.Path))
	if rc.Query != "" {
		add(Key("query", rc.Query))
	}
	add(UserID(rc.UserID))
	if rc.Username != "" {
		add(Key("username", rc.Username))
	}
	add(SessionID(rc.SessionID))
	add(ClientIP(rc.IP))
	add(UserAgent(rc.UserAgent))
	for k, v := range rc.Fields {
		if v != "" {
			add(Key(k, v))
		}
	}
	return attrs
}
