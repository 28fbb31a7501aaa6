package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/journal/core/logger"
	"github.com/dmitrymomot/journal/core/session"
	"github.com/dmitrymomot/journal/core/sessioncookie"
	"github.com/dmitrymomot/journal/core/user"
	"github.com/dmitrymomot/journal/pkg/requestctx"
)

// authKey is an unexported key type to avoid context key collisions.
type authKey struct{}

// Auth is the request-scoped identity slot. Both pointers are explicitly
// nil for logged-out requests, so downstream code treats "no session" and
// "invalid session" uniformly.
type Auth struct {
	User    *user.SafeUser
	Session *session.Serialized
}

// Authenticated reports whether the request carries a valid session.
func (a Auth) Authenticated() bool {
	return a.User != nil && a.Session != nil
}

// Identity retrieves the identity slot populated by the Session middleware.
// Returns a zero Auth when the middleware did not run.
func Identity(ctx context.Context) Auth {
	a, _ := ctx.Value(authKey{}).(Auth)
	return a
}

// SessionValidator is the slice of the session manager the middleware needs.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (session.Identity, error)
	Refresh(ctx context.Context, sessionID string) (time.Time, bool, error)
}

// Session validates the cookie-carried token once per request and populates
// the identity slot before any handler logic runs.
//
// Invalid, absent and expired tokens all produce an explicitly empty Auth.
// Storage faults degrade the request to unauthenticated rather than failing
// it: availability wins over strictness on the read path. When validation
// succeeds and the session sits inside the refresh window, the extended
// expiry is written back to the cookie so client and server expiries stay
// in sync.
func Session(validator SessionValidator, cookies *sessioncookie.Writer, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := cookies.Read(r)

			identity, err := validator.Validate(ctx, token)
			switch {
			case err == nil:
				// Enrich the correlation context now that the user resolved.
				ctx = requestctx.Child(ctx, requestctx.Context{
					UserID:    identity.User.ID,
					Username:  identity.User.Username,
					SessionID: identity.Session.ID,
				})

				if newExpiry, refreshed, refreshErr := validator.Refresh(ctx, identity.Session.ID); refreshErr != nil {
					log.Warn(ctx, "session refresh failed", logger.Err(refreshErr))
				} else if refreshed {
					identity.Session.ExpiresAt = newExpiry
					cookies.Set(w, token, newExpiry)
				}

				ctx = context.WithValue(ctx, authKey{}, Auth{
					User:    &identity.User,
					Session: &identity.Session,
				})

			case errors.Is(err, session.ErrUnauthenticated):
				ctx = context.WithValue(ctx, authKey{}, Auth{})

			default:
				// Storage unavailable: the handler still runs, just without
				// an identity. Login and logout hold a hard storage
				// dependency themselves and fail on their own terms.
				log.Warn(ctx, "session validation degraded to unauthenticated", logger.Err(err))
				ctx = context.WithValue(ctx, authKey{}, Auth{})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with 401. Apply after the
// Session middleware.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Identity(r.Context()).Authenticated() {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
