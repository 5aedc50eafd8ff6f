// Package tournamentservice owns the live tournament state and applies every
// change to it atomically.
package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rosterservice "github.com/Black-And-White-Club/winter-olympics/app/modules/roster/application"
	scoreservice "github.com/Black-And-White-Club/winter-olympics/app/modules/score/application"
	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	tournamentdb "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/winter-olympics/app/observability"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

const serviceName = "TournamentService"

// TournamentService implements the Service interface.
type TournamentService struct {
	mu    sync.Mutex
	state *tournamenttypes.State

	repo       tournamentdb.Repository
	storageKey string
	parsers    *tabular.Factory
	importer   *rosterservice.Importer
	rng        *rand.Rand
	newID      func() string
	now        func() time.Time

	logger  *slog.Logger
	metrics observability.TournamentMetrics
	tracer  trace.Tracer
}

// Option configures a TournamentService.
type Option func(*TournamentService)

// WithRand sets the source of randomness for matchups and pool assignment.
func WithRand(rng *rand.Rand) Option {
	return func(s *TournamentService) { s.rng = rng }
}

// WithIDGenerator replaces the uuid generator for new teams and matches.
func WithIDGenerator(fn func() string) Option {
	return func(s *TournamentService) { s.newID = fn }
}

// WithClock replaces time.Now, used for export timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *TournamentService) { s.now = now }
}

// WithParsers sets the tabular parser factory.
func WithParsers(f *tabular.Factory) Option {
	return func(s *TournamentService) { s.parsers = f }
}

// NewTournamentService creates a new TournamentService holding a default
// state. Call Load to restore the stored one.
func NewTournamentService(
	repo tournamentdb.Repository,
	storageKey string,
	logger *slog.Logger,
	metrics observability.TournamentMetrics,
	tracer trace.Tracer,
	opts ...Option,
) *TournamentService {
	s := &TournamentService{
		state:      tournamenttypes.NewState(),
		repo:       repo,
		storageKey: storageKey,
		parsers:    tabular.NewFactory(true),
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		newID:      uuid.NewString,
		now:        time.Now,
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.importer = rosterservice.NewImporter(
		rosterservice.WithRand(s.rng),
		rosterservice.WithIDGenerator(func() tournamenttypes.TeamID { return tournamenttypes.TeamID(s.newID()) }),
	)
	return s
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func (s *TournamentService) withTelemetry(
	ctx context.Context,
	operationName string,
	op func(ctx context.Context) error,
) (err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("storage_key", s.storageKey),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				observability.Operation(operationName),
				observability.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
		}
	}()

	if err = op(ctx); err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		level := slog.LevelWarn
		if errors.Is(err, ErrPersistFailed) {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "Operation refused",
			observability.Operation(operationName),
			observability.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return wrappedErr
	}

	s.logger.DebugContext(ctx, operationName+" completed successfully",
		observability.Operation(operationName),
	)
	return nil
}

// mutate applies fn to a copy of the state, stores the copy and only then
// makes it live. When fn or the store fails the live state is unchanged.
func (s *TournamentService) mutate(ctx context.Context, fn func(next *tournamenttypes.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *TournamentService) persist(ctx context.Context, state *tournamenttypes.State) error {
	snap, err := tournamentdb.NewSnapshot(s.storageKey, state)
	if err != nil {
		s.metrics.RecordPersistFailure(ctx)
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	snap.UpdatedAt = s.now().UTC()
	if err := s.repo.SaveSnapshot(ctx, snap); err != nil {
		s.metrics.RecordPersistFailure(ctx)
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	return nil
}

// Load restores the stored state. A missing or unreadable snapshot yields a
// fresh default state; only storage failures are returned.
func (s *TournamentService) Load(ctx context.Context) error {
	return s.withTelemetry(ctx, "Load", func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		snap, err := s.repo.LoadSnapshot(ctx, s.storageKey)
		if errors.Is(err, tournamentdb.ErrNotFound) {
			s.logger.InfoContext(ctx, "No stored tournament, starting fresh", slog.String("storage_key", s.storageKey))
			s.state = tournamenttypes.NewState()
			return nil
		}
		if err != nil {
			return err
		}

		state, err := tournamentdb.MigrateSnapshot([]byte(snap.Payload))
		if err != nil {
			s.logger.WarnContext(ctx, "Stored tournament is unreadable, starting fresh",
				slog.String("storage_key", s.storageKey),
				observability.Error(err),
			)
			s.state = tournamenttypes.NewState()
			return nil
		}

		if dropped := state.Prune(); dropped > 0 {
			s.logger.InfoContext(ctx, "Dropped references to unknown teams", slog.Int("dropped", dropped))
		}
		s.state = state
		s.logger.InfoContext(ctx, "Tournament loaded",
			slog.Int("teams", len(state.Teams)),
			slog.Int("snapshot_version", snap.FormatVersion),
		)
		return nil
	})
}

// Save stores the live state as it is.
func (s *TournamentService) Save(ctx context.Context) error {
	return s.withTelemetry(ctx, "Save", func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.persist(ctx, s.state)
	})
}

// Reset replaces everything with a fresh default state.
func (s *TournamentService) Reset(ctx context.Context) error {
	return s.withTelemetry(ctx, "Reset", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			*next = *tournamenttypes.NewState()
			return nil
		})
	})
}

// State returns a copy of the live state.
func (s *TournamentService) State() *tournamenttypes.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Points scores the live state.
func (s *TournamentService) Points() map[tournamenttypes.TeamID]scoreservice.TeamPoints {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scoreservice.ComputePoints(s.state)
}

// Standings ranks the teams of the live state.
func (s *TournamentService) Standings() []scoreservice.Standing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scoreservice.Standings(s.state)
}
