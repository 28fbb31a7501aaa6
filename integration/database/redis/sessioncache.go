package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/journal/core/session"
)

const (
	sessionKeyPrefix  = "session:"
	userIndexPrefix   = "user_sessions:"
	userIndexSlackTTL = time.Hour
)

type cachedSession struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UserAgent string    `json:"userAgent,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
}

// SessionCache is a read-through cache for session records. Entries
// expire with the session itself, and a per-user index set makes global
// logout drop every cached entry for a user at once.
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache returns a cache backed by client.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

func sessionKey(id string) string   { return sessionKeyPrefix + id }
func userIndexKey(id string) string { return userIndexPrefix + id }

func (c *SessionCache) Set(ctx context.Context, s session.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return c.Delete(ctx, s.ID)
	}

	data, err := json.Marshal(cachedSession{
		ID:        s.ID,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
	})
	if err != nil {
		return err
	}

	// The index set outlives the entry slightly so a refresh racing an
	// eviction still lands in a live set.
	pipe := c.client.Pipeline()
	pipe.Set(ctx, sessionKey(s.ID), data, ttl)
	pipe.SAdd(ctx, userIndexKey(s.UserID), s.ID)
	pipe.Expire(ctx, userIndexKey(s.UserID), ttl+userIndexSlackTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *SessionCache) Get(ctx context.Context, id string) (session.Session, bool, error) {
	val, err := c.client.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, err
	}

	var cached cachedSession
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return session.Session{}, false, err
	}

	return session.Session{
		ID:        cached.ID,
		UserID:    cached.UserID,
		ExpiresAt: cached.ExpiresAt,
		CreatedAt: cached.CreatedAt,
		UserAgent: cached.UserAgent,
		IPAddress: cached.IPAddress,
	}, true, nil
}

func (c *SessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, sessionKey(id)).Err()
}

func (c *SessionCache) DeleteAllForUser(ctx context.Context, userID string) error {
	ids, err := c.client.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userIndexKey(userID))
	return c.client.Del(ctx, keys...).Err()
}
