package tournamentdb

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no snapshot is stored under a key.
var ErrNotFound = errors.New("snapshot not found")

//go:generate mockgen -source=interface.go -destination=mocks/mock_repository.go -package=mocks

// Repository stores serialized tournament snapshots by key.
//
// Error semantics:
//   - ErrNotFound: nothing stored under the key (LoadSnapshot)
//   - Other errors: infrastructure failures
type Repository interface {
	// LoadSnapshot returns the snapshot stored under key.
	LoadSnapshot(ctx context.Context, key string) (*Snapshot, error)

	// SaveSnapshot inserts or replaces the snapshot under snapshot.Key.
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
}
