package reports

import (
	"context"
	"errors"
)

// ErrNotFound indicates no profile has been saved for the user yet.
var ErrNotFound = errors.New("report profile not found")

// ProfileStore persists per-user report profiles.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (Profile, error)
	Put(ctx context.Context, p Profile) error
}
