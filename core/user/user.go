package user

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a user cannot be found in the store.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned when a username or email is taken.
	ErrAlreadyExists = errors.New("user already exists")
)

// AuthProvider identifies how the account authenticates.
type AuthProvider string

const (
	ProviderPassword AuthProvider = "password"
	ProviderGoogle   AuthProvider = "google"
)

// User is the full account record as persisted. PasswordHash and OAuthID
// must never leave the server; use Sanitize for anything request-facing.
type User struct {
	ID           string
	Username     string
	Email        string
	DisplayName  string
	AvatarURL    string
	BioText      string
	BioImageURL  string
	AuthProvider AuthProvider

	PasswordHash string
	OAuthID      string

	CloseFriends   []string
	CanViewFriends []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SafeUser is the externally-safe projection of a user record: no password
// hash, no raw OAuth id. It is recomputed per request and never cached
// beyond one request.
type SafeUser struct {
	ID             string       `json:"id"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	DisplayName    string       `json:"username_display"`
	AvatarURL      string       `json:"avatar_url,omitempty"`
	BioText        string       `json:"bio_text"`
	BioImageURL    string       `json:"bio_image_url,omitempty"`
	AuthProvider   AuthProvider `json:"auth_provider"`
	CloseFriends   []string     `json:"close_friends"`
	CanViewFriends []string     `json:"can_view_friends"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Sanitize strips credential material from the record.
func (u User) Sanitize() SafeUser {
	closeFriends := u.CloseFriends
	if closeFriends == nil {
		closeFriends = []string{}
	}
	canView := u.CanViewFriends
	if canView == nil {
		canView = []string{}
	}

	return SafeUser{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		AvatarURL:      u.AvatarURL,
		BioText:        u.BioText,
		BioImageURL:    u.BioImageURL,
		AuthProvider:   u.AuthProvider,
		CloseFriends:   closeFriends,
		CanViewFriends: canView,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// Store defines user persistence. Implementations must return ErrNotFound
// for missing records and ErrAlreadyExists on unique constraint conflicts.
type Store interface {
	Create(ctx context.Context, u User) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}
