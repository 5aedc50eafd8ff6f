package tournamentservice

import (
	"context"

	tournamentdb "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/infrastructure/repositories"
)

// ------------------------
// Fake Snapshot Repo
// ------------------------

// FakeSnapshotRepository provides a programmable stub for the tournamentdb.Repository interface.
type FakeSnapshotRepository struct {
	trace []string

	LoadSnapshotFunc func(ctx context.Context, key string) (*tournamentdb.Snapshot, error)
	SaveSnapshotFunc func(ctx context.Context, snapshot *tournamentdb.Snapshot) error
	Saved            []*tournamentdb.Snapshot
}

// NewFakeSnapshotRepository initializes a new FakeSnapshotRepository with an empty trace.
func NewFakeSnapshotRepository() *FakeSnapshotRepository {
	return &FakeSnapshotRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeSnapshotRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSnapshotRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSnapshotRepository) LoadSnapshot(ctx context.Context, key string) (*tournamentdb.Snapshot, error) {
	f.record("LoadSnapshot")
	if f.LoadSnapshotFunc != nil {
		return f.LoadSnapshotFunc(ctx, key)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *tournamentdb.Snapshot) error {
	f.record("SaveSnapshot")
	f.Saved = append(f.Saved, snapshot)
	if f.SaveSnapshotFunc != nil {
		return f.SaveSnapshotFunc(ctx, snapshot)
	}
	return nil
}

// Last returns the most recently saved snapshot.
func (f *FakeSnapshotRepository) Last() *tournamentdb.Snapshot {
	if len(f.Saved) == 0 {
		return nil
	}
	return f.Saved[len(f.Saved)-1]
}
