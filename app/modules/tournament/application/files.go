package tournamentservice

import (
	"context"
	"fmt"
	"log/slog"

	resultsservice "github.com/Black-And-White-Club/winter-olympics/app/modules/results/application"
	rosterservice "github.com/Black-And-White-Club/winter-olympics/app/modules/roster/application"
	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

// ImportRoster replaces the teams with those found in a roster file and
// clears every event. Settings are kept.
func (s *TournamentService) ImportRoster(ctx context.Context, filename string, data []byte) (rosterservice.Result, error) {
	var result rosterservice.Result
	err := s.withTelemetry(ctx, "ImportRoster", func(ctx context.Context) error {
		parser, err := s.parsers.GetParser(filename)
		if err != nil {
			return err
		}
		table, err := parser.Parse(data)
		if err != nil {
			return err
		}

		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			result = s.importer.Import(table)
			next.Teams = result.Teams
			next.Events = tournamenttypes.NewEvents()
			return nil
		})
	})
	if err != nil {
		return rosterservice.Result{}, err
	}

	format, _ := tabular.DetectFormat(filename)
	s.metrics.RecordImport(ctx, "roster", string(format), len(result.Teams))
	s.logger.InfoContext(ctx, "Roster imported",
		slog.String("file", filename),
		slog.Int("teams", len(result.Teams)),
		slog.Any("warnings", result.Warnings),
	)
	return result, nil
}

// ImportResults replaces the whole state with a saved results file. The file
// is decoded and validated completely before anything changes.
func (s *TournamentService) ImportResults(ctx context.Context, filename string, data []byte) error {
	var teams int
	err := s.withTelemetry(ctx, "ImportResults", func(ctx context.Context) error {
		format, err := tabular.DetectFormat(filename)
		if err != nil {
			return err
		}

		var decoded *tournamenttypes.State
		switch format {
		case tabular.FormatXLSX:
			if !s.parsers.SpreadsheetsEnabled() {
				return tabular.ErrSpreadsheetUnavailable
			}
			decoded, err = resultsservice.DecodeWorkbook(data)
		default:
			decoded, err = resultsservice.DecodeCSV(data)
		}
		if err != nil {
			return err
		}
		if dropped := decoded.Prune(); dropped > 0 {
			s.logger.InfoContext(ctx, "Dropped references to unknown teams", slog.Int("dropped", dropped))
		}
		teams = len(decoded.Teams)

		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			*next = *decoded
			return nil
		})
	})
	if err != nil {
		return err
	}

	format, _ := tabular.DetectFormat(filename)
	s.metrics.RecordImport(ctx, "results", string(format), teams)
	s.logger.InfoContext(ctx, "Results imported", slog.String("file", filename), slog.Int("teams", teams))
	return nil
}

// ExportResults encodes the live state in the given format and returns the
// suggested file name with the file contents.
func (s *TournamentService) ExportResults(ctx context.Context, format tabular.Format) (string, []byte, error) {
	var (
		name string
		data []byte
	)
	err := s.withTelemetry(ctx, "ExportResults", func(ctx context.Context) error {
		state := s.State()
		now := s.now()

		var err error
		switch format {
		case tabular.FormatCSV:
			data, err = resultsservice.EncodeCSV(state, now)
		case tabular.FormatXLSX:
			if !s.parsers.SpreadsheetsEnabled() {
				return tabular.ErrSpreadsheetUnavailable
			}
			data, err = resultsservice.EncodeWorkbook(state, now)
		default:
			return fmt.Errorf("%w: %q", tabular.ErrUnsupportedFileType, format)
		}
		if err != nil {
			return err
		}
		name = resultsservice.ExportFilename(tournamenttypes.AppSlug, string(format), now)
		return nil
	})
	return name, data, err
}
