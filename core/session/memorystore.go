package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. Intended for tests
// and single-instance development setups; production deployments use the
// Mongo or Postgres stores.
//
// A janitor goroutine sweeps expired records so abandoned sessions
// disappear even when no validation traffic ever touches them again.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session

	cancel context.CancelFunc
	done   chan struct{}
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*memoryStoreOptions)

type memoryStoreOptions struct {
	sweepInterval time.Duration
}

// WithSweepInterval sets how often the janitor removes expired sessions.
// Zero disables the janitor.
func WithSweepInterval(interval time.Duration) MemoryStoreOption {
	return func(o *memoryStoreOptions) {
		o.sweepInterval = interval
	}
}

// NewMemoryStore creates an in-memory session store. The janitor starts
// immediately; call Close to stop it.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	cfg := memoryStoreOptions{sweepInterval: time.Minute}
	for _, opt := range opts {
		opt(&cfg)
	}

	ms := &MemoryStore{
		sessions: make(map[string]Session),
		done:     make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	ms.cancel = cancel
	if cfg.sweepInterval > 0 {
		go ms.janitor(ctx, cfg.sweepInterval)
	} else {
		close(ms.done)
	}

	return ms
}

// Close stops the janitor. The store remains usable afterwards.
func (ms *MemoryStore) Close() {
	ms.cancel()
	<-ms.done
}

func (ms *MemoryStore) janitor(ctx context.Context, interval time.Duration) {
	defer close(ms.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = ms.DeleteExpired(ctx)
		}
	}
}

func (ms *MemoryStore) Create(_ context.Context, s Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[s.ID] = s
	return nil
}

func (ms *MemoryStore) FindByID(_ context.Context, id string) (Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	s, ok := ms.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (ms *MemoryStore) UpdateExpiry(_ context.Context, id string, expiresAt time.Time) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	s, ok := ms.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.ExpiresAt = expiresAt
	ms.sessions[id] = s
	return nil
}

func (ms *MemoryStore) DeleteByID(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.sessions, id)
	return nil
}

func (ms *MemoryStore) DeleteAllForUser(_ context.Context, userID string) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var count int64
	for id, s := range ms.sessions {
		if s.UserID == userID {
			delete(ms.sessions, id)
			count++
		}
	}
	return count, nil
}

func (ms *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	var count int64
	for id, s := range ms.sessions {
		if !s.ExpiresAt.After(now) {
			delete(ms.sessions, id)
			count++
		}
	}
	return count, nil
}

// Len reports the number of stored sessions, expired or not.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.sessions)
}
