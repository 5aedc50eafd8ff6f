package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// SnapshotDBImpl is the bun-backed Repository. It works on Postgres and SQLite.
type SnapshotDBImpl struct {
	DB *bun.DB
}

// NewSnapshotDB returns a repository on db.
func NewSnapshotDB(db *bun.DB) *SnapshotDBImpl {
	return &SnapshotDBImpl{DB: db}
}

func (db *SnapshotDBImpl) LoadSnapshot(ctx context.Context, key string) (*Snapshot, error) {
	var snap Snapshot
	err := db.DB.NewSelect().Model(&snap).Where("storage_key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	return &snap, nil
}

func (db *SnapshotDBImpl) SaveSnapshot(ctx context.Context, snapshot *Snapshot) error {
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = time.Now().UTC()
	}
	_, err := db.DB.NewInsert().
		Model(snapshot).
		On("CONFLICT (storage_key) DO UPDATE").
		Set("format_version = EXCLUDED.format_version").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", snapshot.Key, err)
	}
	return nil
}
