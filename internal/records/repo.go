package records

import (
	"context"
	"errors"
)

// ErrNotFound indicates the record does not exist or is not visible.
var ErrNotFound = errors.New("record not found")

// ErrInvalidInput marks request-level validation failures.
var ErrInvalidInput = errors.New("invalid input")

// Repo is the persistence contract for records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	// ListVisible returns every record the actor may see, ordered oldest
	// first. Search, filtering and sorting happen in the transform pipeline.
	ListVisible(ctx context.Context, a Actor) ([]Record, error)
	Delete(ctx context.Context, id string) error
}
