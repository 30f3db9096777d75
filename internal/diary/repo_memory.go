package diary

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Entry // entryID -> entry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Entry)}
}

// Create stores a new entry.
func (r *MemoryRepo) Create(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[e.ID] = e
	return nil
}

// Update replaces an existing entry owned by the same user.
func (r *MemoryRepo) Update(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[e.ID]
	if !ok || existing.UserID != e.UserID {
		return ErrNotFound
	}
	r.data[e.ID] = e
	return nil
}

// GetByID returns one entry owned by the user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.data[id]
	if !ok || e.UserID != userID {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// ListByMonth returns the user's entries for a YYYY-MM month in creation order.
func (r *MemoryRepo) ListByMonth(ctx context.Context, userID, month string) ([]Entry, error) {
	all, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := all[:0:0]
	for _, e := range all {
		if strings.HasPrefix(e.Date, month) {
			out = append(out, e)
		}
	}
	return out, nil
}

// List returns all the user's entries in creation order.
func (r *MemoryRepo) List(ctx context.Context, userID string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Entry
	for _, e := range r.data {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes an entry owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.data[id]
	if !ok || e.UserID != userID {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
