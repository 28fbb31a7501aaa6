package session

import "time"

// Session is the persisted session record. ID is the one-way hash of the
// client-held token; the token itself never touches storage, so a leaked
// session table cannot be replayed against the server.
type Session struct {
	// ID is the lowercase hex SHA-256 of the client token. It doubles as
	// the primary key; there is no separate surrogate id.
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time

	// Audit fields, captured at creation.
	UserAgent string
	IPAddress string
}

// IsExpired returns true if the session's absolute expiry has passed.
func (s Session) IsExpired() bool {
	return !s.ExpiresAt.After(time.Now())
}

// Serialize returns the request-facing projection of the session.
func (s Session) Serialize() Serialized {
	return Serialized{
		ID:        s.ID,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
	}
}

// Serialized is the externally-safe session projection assigned to
// request-scoped state after validation.
type Serialized struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Metadata carries optional client audit fields for session creation.
type Metadata struct {
	UserAgent string
	IPAddress string
}
