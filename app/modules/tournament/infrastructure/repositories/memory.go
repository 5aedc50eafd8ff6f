package tournamentdb

import (
	"context"
	"sync"
)

// MemoryRepository keeps snapshots in process memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{snapshots: make(map[string]Snapshot)}
}

func (r *MemoryRepository) LoadSnapshot(_ context.Context, key string) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.snapshots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &snap, nil
}

func (r *MemoryRepository) SaveSnapshot(_ context.Context, snapshot *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[snapshot.Key] = *snapshot
	return nil
}
