package logbook

import (
	"context"
	"errors"
)

// ErrNotFound indicates the entry does not exist for this user.
var ErrNotFound = errors.New("log-book entry not found")

// Repo is the persistence contract for log-book entries. Every operation is
// scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, e Entry) error
	Update(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, userID, id string) (Entry, error)
	// ListByMonth returns the user's entries for a YYYY-MM month in
	// creation order.
	ListByMonth(ctx context.Context, userID, month string) ([]Entry, error)
	List(ctx context.Context, userID string) ([]Entry, error)
	Delete(ctx context.Context, userID, id string) error
}
