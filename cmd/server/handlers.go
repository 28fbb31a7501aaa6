package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dmitrymomot/journal/core/logger"
	"github.com/dmitrymomot/journal/core/password"
	"github.com/dmitrymomot/journal/core/session"
	"github.com/dmitrymomot/journal/core/sessioncookie"
	"github.com/dmitrymomot/journal/core/user"
	"github.com/dmitrymomot/journal/middleware"
	"github.com/dmitrymomot/journal/pkg/clientip"
)

const (
	minPasswordLength = 8
	maxBodyBytes      = 64 << 10
)

// userDirectory is the account surface the handlers need: lookups for
// login plus creation for registration.
type userDirectory interface {
	user.Store
	FindUserByID(ctx context.Context, id string) (user.User, error)
}

type handler struct {
	sessions *session.Manager
	users    userDirectory
	cookies  *sessioncookie.Writer
	log      *logger.Logger
}

func newHandler(sessions *session.Manager, users userDirectory, cookies *sessioncookie.Writer, log *logger.Logger) *handler {
	return &handler{
		sessions: sessions,
		users:    users,
		cookies:  cookies,
		log:      log.Child(logger.Component("AuthHandler")),
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case req.Username == "":
		respondError(w, http.StatusBadRequest, "username is required")
		return
	case !validEmail(req.Email):
		respondError(w, http.StatusBadRequest, "a valid email is required")
		return
	case len(req.Password) < minPasswordLength:
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := password.Hash(req.Password, password.DefaultParams())
	if err != nil {
		h.log.Error(r.Context(), "failed to hash password", logger.Err(err))
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	created, err := h.users.Create(r.Context(), user.User{
		Username:     req.Username,
		Email:        req.Email,
		DisplayName:  strings.TrimSpace(req.Username),
		AuthProvider: user.ProviderPassword,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			respondError(w, http.StatusConflict, "username or email already taken")
			return
		}
		h.log.Error(r.Context(), "failed to create user", logger.Err(err))
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.issueSession(w, r, created, http.StatusCreated)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	u, err := h.users.FindByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Burn a verification anyway so missing accounts cost the
			// same as wrong passwords.
			_, _ = password.Verify(password.DummyHash, req.Password)
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error(r.Context(), "user lookup failed", logger.Err(err))
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	ok, err := password.Verify(u.PasswordHash, req.Password)
	if err != nil || !ok {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.issueSession(w, r, u, http.StatusOK)
}

// issueSession creates a session for u, sets the cookie, and responds
// with the sanitized account. Session issuance hard-fails on storage
// errors; a login that silently lost its session would be worse than a
// failed login.
func (h *handler) issueSession(w http.ResponseWriter, r *http.Request, u user.User, status int) {
	created, err := h.sessions.Create(r.Context(), u.ID, session.Metadata{
		UserAgent: r.UserAgent(),
		IPAddress: clientip.GetIP(r),
	})
	if err != nil {
		h.log.Error(r.Context(), "failed to create session", logger.Err(err), logger.UserID(u.ID))
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.cookies.Set(w, created.Token, created.ExpiresAt)
	respondJSON(w, status, map[string]any{"user": u.Sanitize()})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	if token := h.cookies.Read(r); token != "" {
		if err := h.sessions.Invalidate(r.Context(), token); err != nil {
			h.log.Error(r.Context(), "failed to invalidate session", logger.Err(err))
			respondError(w, http.StatusInternalServerError, "logout failed")
			return
		}
	}

	h.cookies.Clear(w)
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *handler) logoutEverywhere(w http.ResponseWriter, r *http.Request) {
	auth := middleware.Identity(r.Context())
	if !auth.Authenticated() {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.sessions.InvalidateAllForUser(r.Context(), auth.User.ID); err != nil {
		h.log.Error(r.Context(), "failed to invalidate user sessions", logger.Err(err), logger.UserID(auth.User.ID))
		respondError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	h.cookies.Clear(w)
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	auth := middleware.Identity(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"user":    auth.User,
		"session": auth.Session,
	})
}

func (h *handler) health(checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				h.log.Warn(r.Context(), "healthcheck failed", logger.Err(err))
				respondError(w, http.StatusServiceUnavailable, "unhealthy")
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// routes assembles the HTTP surface. The session middleware runs on every
// route so handlers can rely on the identity slot being populated.
func (h *handler) routes(mux *http.ServeMux, checks ...func(context.Context) error) {
	mux.HandleFunc("POST /auth/register", h.register)
	mux.HandleFunc("POST /auth/login", h.login)
	mux.HandleFunc("POST /auth/logout", h.logout)
	mux.Handle("POST /auth/logout-all", middleware.RequireAuth(http.HandlerFunc(h.logoutEverywhere)))
	mux.Handle("GET /me", middleware.RequireAuth(http.HandlerFunc(h.me)))
	mux.HandleFunc("GET /health", h.health(checks...))
}
