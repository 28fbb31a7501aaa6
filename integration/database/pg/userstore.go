package pg

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/journal/core/user"
)

const userColumns = `
	id, username, email, username_display, avatar_url, bio_text, bio_image_url,
	auth_provider, password_hash, oauth_id, close_friends, can_view_friends,
	created_at, updated_at
`

// UserStore persists accounts in the users table. It implements
// user.Store and doubles as the session.UserLoader.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore returns a store over pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = uuid.NewString()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.CloseFriends == nil {
		u.CloseFriends = []string{}
	}
	if u.CanViewFriends == nil {
		u.CanViewFriends = []string{}
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.pool.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.DisplayName, u.AvatarURL, u.BioText, u.BioImageURL,
		string(u.AuthProvider), u.PasswordHash, u.OAuthID, u.CloseFriends, u.CanViewFriends,
		u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return user.User{}, user.ErrAlreadyExists
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		// Malformed ids cannot match any record.
		return user.User{}, user.ErrNotFound
	}
	return s.findOne(ctx, `WHERE id = $1`, id)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (user.User, error) {
	return s.findOne(ctx, `WHERE username = $1`, username)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return s.findOne(ctx, `WHERE email = $1`, email)
}

// FindUserByID satisfies the session user loader.
func (s *UserStore) FindUserByID(ctx context.Context, id string) (user.User, error) {
	return s.FindByID(ctx, id)
}

func (s *UserStore) findOne(ctx context.Context, where string, arg any) (user.User, error) {
	var (
		u        user.User
		provider string
	)
	err := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.AvatarURL, &u.BioText, &u.BioImageURL,
		&provider, &u.PasswordHash, &u.OAuthID, &u.CloseFriends, &u.CanViewFriends,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if IsNotFoundError(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.AuthProvider = user.AuthProvider(provider)
	return u, nil
}
