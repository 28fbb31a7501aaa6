package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/journal/core/session"
	"github.com/dmitrymomot/journal/core/user"
)

// SessionStore persists sessions in the sessions table keyed by the
// session id. It implements session.Store.
type SessionStore struct {
	pool *pgxpool.Pool
}

// NewSessionStore returns a store over pool.
func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

func (s *SessionStore) Create(ctx context.Context, sess session.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at, created_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at,
			user_agent = EXCLUDED.user_agent,
			ip_address = EXCLUDED.ip_address
	`
	_, err := s.pool.Exec(ctx, query,
		sess.ID, sess.UserID, sess.ExpiresAt, sess.CreatedAt, sess.UserAgent, sess.IPAddress)
	if err != nil {
		// A violation on the user_id reference means the user row was
		// deleted between lookup and write.
		if IsForeignKeyViolationError(err) {
			return user.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *SessionStore) FindByID(ctx context.Context, id string) (session.Session, error) {
	query := `
		SELECT id, user_id, expires_at, created_at, user_agent, ip_address
		FROM sessions WHERE id = $1
	`
	var sess session.Session
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&sess.ID, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt, &sess.UserAgent, &sess.IPAddress)
	if err != nil {
		if IsNotFoundError(err) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}
	return sess, nil
}

func (s *SessionStore) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `UPDATE sessions SET expires_at = $2 WHERE id = $1`, id, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (s *SessionStore) DeleteByID(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *SessionStore) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
