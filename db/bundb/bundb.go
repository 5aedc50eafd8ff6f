// Package bundb opens the snapshot database for the configured driver.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	tournamentdb "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/winter-olympics/config"
)

// Store is an opened snapshot store. DB is nil for the memory driver.
type Store struct {
	Repo tournamentdb.Repository
	DB   *bun.DB
}

// Close releases the database connection, if any.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Open connects to the configured database and brings its schema up to date.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Store, error) {
	if cfg.Driver == config.DriverMemory {
		logger.InfoContext(ctx, "Using in-memory snapshot storage")
		return &Store{Repo: tournamentdb.NewMemoryRepository()}, nil
	}

	db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}
	logger.InfoContext(ctx, "Snapshot storage ready", slog.String("driver", cfg.Driver))
	return &Store{Repo: tournamentdb.NewSnapshotDB(db), DB: db}, nil
}

// Connect returns a bun.DB for a SQL driver without touching the schema.
func Connect(ctx context.Context, cfg config.StorageConfig) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.Driver {
	case config.DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
		db = bun.NewDB(sqldb, pgdialect.New())
	case config.DriverSQLite:
		sqldb, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// SQLite allows a single writer.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db.RegisterModel((*tournamentdb.Snapshot)(nil))
	return db, nil
}

// NewMigrator returns the migrator for the snapshot schema.
func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, migrations.Migrations)
}

// Migrate creates the migration tables and applies pending migrations.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrator := NewMigrator(db)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	if !group.IsZero() {
		logger.InfoContext(ctx, "Applied migrations", slog.String("group", group.String()))
	}
	return nil
}
