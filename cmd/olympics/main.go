package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	tournamentservice "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/application"
	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/observability"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
	"github.com/Black-And-White-Club/winter-olympics/config"
	"github.com/Black-And-White-Club/winter-olympics/db/bundb"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := newApp()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, tournamentservice.UserMessage(err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  tournamenttypes.AppSlug,
		Usage: "run the " + tournamenttypes.AppName,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"OLYMPICS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "storage-key",
				Usage: "snapshot key to load and save",
			},
		},
		Commands: []*cli.Command{
			importRosterCommand(),
			loadResultsCommand(),
			saveResultsCommand(),
			standingsCommand(),
			chartCommand(),
			matchupsCommand(),
			teamCommand(),
			matchCommand(),
			timeCommand(),
			settingCommand(),
			resetCommand(),
			newDBCommand(),
		},
	}
}

// session is everything a tournament command needs, opened from config.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *bundb.Store
	metrics *observability.PrometheusMetrics
	svc     *tournamentservice.TournamentService
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if key := c.String("storage-key"); key != "" {
		cfg.Storage.Key = key
	}
	return cfg, nil
}

func openSession(c *cli.Context) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	logger, err := observability.NewLogger(c.App.ErrWriter, cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return nil, err
	}
	if cfg.Observability.Environment != "" {
		logger = logger.With(slog.String("env", cfg.Observability.Environment))
	}

	store, err := bundb.Open(c.Context, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewPrometheusMetrics()
	svc := tournamentservice.NewTournamentService(
		store.Repo,
		cfg.Storage.Key,
		logger,
		metrics,
		observability.Tracer(),
		tournamentservice.WithParsers(tabular.NewFactory(cfg.Import.SpreadsheetsEnabled)),
	)
	if err := svc.Load(c.Context); err != nil {
		store.Close()
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, store: store, metrics: metrics, svc: svc}, nil
}

func (s *session) close() error {
	var errs []error
	if path := s.cfg.Observability.MetricsFile; path != "" {
		if err := s.metrics.WriteTextfile(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// withService opens a session around a command action.
func withService(action func(c *cli.Context, svc *tournamentservice.TournamentService) error) cli.ActionFunc {
	return func(c *cli.Context) (err error) {
		s, err := openSession(c)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.close(); cerr != nil {
				s.logger.Error("Failed to close session", observability.Error(cerr))
				if err == nil {
					err = cerr
				}
			}
		}()
		return action(c, s.svc)
	}
}
