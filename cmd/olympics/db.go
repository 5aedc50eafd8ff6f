package main

import (
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	"github.com/Black-And-White-Club/winter-olympics/config"
	"github.com/Black-And-White-Club/winter-olympics/db/bundb"
)

// withMigrator connects to the configured database without migrating it.
func withMigrator(action func(c *cli.Context, migrator *migrate.Migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if cfg.Storage.Driver == config.DriverMemory {
			return cli.Exit("the memory driver has no schema to migrate", 2)
		}
		db, err := bundb.Connect(c.Context, cfg.Storage)
		if err != nil {
			return err
		}
		defer func(db *bun.DB) { _ = db.Close() }(db)
		return action(c, bundb.NewMigrator(db))
	}
}

func newDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					return migrator.Init(c.Context)
				}),
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					if err := migrator.Lock(c.Context); err != nil {
						return err
					}
					defer migrator.Unlock(c.Context) //nolint:errcheck

					group, err := migrator.Migrate(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "No new migrations to run")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "Migrated to %s\n", group)
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					if err := migrator.Lock(c.Context); err != nil {
						return err
					}
					defer migrator.Unlock(c.Context) //nolint:errcheck

					group, err := migrator.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "No groups to roll back")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "Rolled back %s\n", group)
					return nil
				}),
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "NAME",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					name := strings.Join(c.Args().Slice(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Created migration %s (%s)\n", mf.Name, mf.Path)
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					ms, err := migrator.MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Migrations: %s\n", ms)
					fmt.Fprintf(c.App.Writer, "Applied: %s\n", ms.Applied())
					fmt.Fprintf(c.App.Writer, "Unapplied: %s\n", ms.Unapplied())
					return nil
				}),
			},
		},
	}
}
