package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]User // userID -> user
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]User)}
}

// Create stores a new user, rejecting duplicate emails.
func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.data {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrEmailTaken
		}
	}
	r.data[user.ID] = user
	return nil
}

// Upsert inserts or replaces a user by ID.
func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.data[user.ID]; ok {
		// Preserve fields the caller does not manage.
		if user.PasswordHash == "" {
			user.PasswordHash = existing.PasswordHash
		}
		if user.Role == "" {
			user.Role = existing.Role
		}
		user.CreatedAt = existing.CreatedAt
	}
	r.data[user.ID] = user
	return nil
}

// GetByID returns a user by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.data[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// GetByEmail returns a user by email, case-insensitively.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.data {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// UpdatePassword replaces the stored password hash and clears any reset token.
func (r *MemoryRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetTokenHash = ""
	u.ResetTokenExpires = nil
	u.UpdatedAt = time.Now().UTC()
	r.data[userID] = u
	return nil
}

// SetResetToken stores a hashed reset token with its expiry.
func (r *MemoryRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.data[userID]
	if !ok {
		return ErrNotFound
	}
	u.ResetTokenHash = tokenHash
	u.ResetTokenExpires = &expires
	r.data[userID] = u
	return nil
}

// GetByResetToken finds the user holding an unexpired reset token hash.
func (r *MemoryRepo) GetByResetToken(ctx context.Context, tokenHash string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now().UTC()
	for _, u := range r.data {
		if u.ResetTokenHash == tokenHash && u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}
