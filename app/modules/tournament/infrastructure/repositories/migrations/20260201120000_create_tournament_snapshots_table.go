package migrations

import (
	"context"
	"fmt"

	tournamentdb "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating tournament_snapshots table...")
			if _, err := db.NewCreateTable().Model((*tournamentdb.Snapshot)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create tournament_snapshots table: %w", err)
			}
			fmt.Println("tournament_snapshots table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping tournament_snapshots table...")
			if _, err := db.NewDropTable().Model((*tournamentdb.Snapshot)(nil)).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop tournament_snapshots table: %w", err)
			}
			fmt.Println("tournament_snapshots table dropped successfully!")
			return nil
		},
	)
}
