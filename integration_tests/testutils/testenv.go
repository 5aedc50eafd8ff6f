package testutils

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Black-And-White-Club/winter-olympics/config"
	"github.com/Black-And-White-Club/winter-olympics/db/bundb"
	"github.com/Black-And-White-Club/winter-olympics/integration_tests/containers"
)

// TestEnvironment holds all resources needed for integration testing
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	Store         *bundb.Store
	Config        *config.Config
	Logger        *slog.Logger
}

// NewTestEnvironment starts a Postgres container and opens a migrated store on it.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	cfg := config.Default()
	cfg.Storage = config.StorageConfig{
		Driver: config.DriverPostgres,
		DSN:    pgConnStr,
		Key:    config.DefaultStorageKey,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := bundb.Open(ctx, cfg.Storage, logger)
	if err != nil {
		pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		PgContainer:   pgContainer,
		Store:         store,
		Config:        cfg,
		Logger:        logger,
	}, nil
}

// Cleanup closes the store and terminates the container.
func (env *TestEnvironment) Cleanup() {
	if env.Store != nil {
		if err := env.Store.Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}

	terminateCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(terminateCtx); err != nil {
			log.Printf("Error terminating PostgreSQL container: %v", err)
		}
	}
	env.CancelContext()
}
