package reports

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of ProfileStore.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Profile // userID -> profile
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Profile)}
}

// Get returns the user's saved profile.
func (s *MemoryStore) Get(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

// Put inserts or replaces the user's profile.
func (s *MemoryStore) Put(ctx context.Context, p Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[p.UserID] = p
	return nil
}

var _ ProfileStore = (*MemoryStore)(nil)
