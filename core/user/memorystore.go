package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process map. Intended for tests
// and single-instance development setups.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]User
	byName  map[string]string
	byEmail map[string]string
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]User),
		byName:  make(map[string]string),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryStore) Create(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[u.Username]; taken {
		return User{}, ErrAlreadyExists
	}
	if _, taken := s.byEmail[u.Email]; taken {
		return User{}, ErrAlreadyExists
	}

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

	s.byID[u.ID] = u
	s.byName[u.Username] = u.ID
	s.byEmail[u.Email] = u.ID
	return u, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (User, error) {
	s.mu.RLock()
	id, ok := s.byName[username]
	s.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// FindUserByID satisfies the session user loader.
func (s *MemoryStore) FindUserByID(ctx context.Context, id string) (User, error) {
	return s.FindByID(ctx, id)
}

// Delete removes a user record. Used in tests to simulate orphaned
// sessions.
func (s *MemoryStore) Delete(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return
	}
	delete(s.byID, id)
	delete(s.byName, u.Username)
	delete(s.byEmail, u.Email)
}
