package sessioncookie

import (
	"net/http"
	"time"
)

// DefaultName is the session cookie name.
const DefaultName = "journal_session"

// Config provides environment-based cookie configuration.
// Secure defaults to true; disable it only for local development over HTTP.
type Config struct {
	Name   string `env:"SESSION_COOKIE_NAME" envDefault:"journal_session"`
	Domain string `env:"SESSION_COOKIE_DOMAIN" envDefault:""`
	Secure bool   `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
}

// Writer issues and clears the session cookie. The cookie carries the raw
// client token: HttpOnly always, SameSite=Lax, Path=/, expiry matching the
// session's absolute expiry.
type Writer struct {
	name   string
	domain string
	secure bool
}

// New creates a cookie writer from configuration.
func New(cfg Config) *Writer {
	name := cfg.Name
	if name == "" {
		name = DefaultName
	}
	return &Writer{
		name:   name,
		domain: cfg.Domain,
		secure: cfg.Secure,
	}
}

// Name returns the configured cookie name.
func (w *Writer) Name() string {
	return w.name
}

// Read extracts the client token from the request cookie.
// Returns "" when the cookie is absent.
func (w *Writer) Read(r *http.Request) string {
	c, err := r.Cookie(w.name)
	if err != nil {
		return ""
	}
	return c.Value
}

// Set issues the session cookie to the client.
func (w *Writer) Set(rw http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(rw, &http.Cookie{
		Name:     w.name,
		Value:    token,
		Path:     "/",
		Domain:   w.domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   w.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the session cookie from the client. Same name and path as
// Set, so the browser drops the right cookie.
func (w *Writer) Clear(rw http.ResponseWriter) {
	http.SetCookie(rw, &http.Cookie{
		Name:     w.name,
		Value:    "",
		Path:     "/",
		Domain:   w.domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   w.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
