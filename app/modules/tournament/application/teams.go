package tournamentservice

import (
	"context"
	"log/slog"
	"strings"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

// AddTeam appends a team. The name is made unique against existing teams and
// members are trimmed and capped.
func (s *TournamentService) AddTeam(ctx context.Context, name string, members []string) (tournamenttypes.Team, error) {
	var team tournamenttypes.Team
	err := s.withTelemetry(ctx, "AddTeam", func(ctx context.Context) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return ErrEmptyTeamName
		}
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			team = tournamenttypes.Team{
				ID:      tournamenttypes.TeamID(s.newID()),
				Name:    tournamenttypes.UniqueTeamName(next.Teams, name),
				Members: tournamenttypes.CleanMembers(members),
			}
			next.Teams = append(next.Teams, team)
			return nil
		})
	})
	if err == nil {
		s.logger.InfoContext(ctx, "Team added", slog.String("team_id", string(team.ID)), slog.String("name", team.Name))
	}
	return team, err
}

// RemoveTeam deletes the team together with its matches and time.
func (s *TournamentService) RemoveTeam(ctx context.Context, id tournamenttypes.TeamID) error {
	return s.withTelemetry(ctx, "RemoveTeam", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			if !next.RemoveTeam(id) {
				return ErrTeamNotFound
			}
			return nil
		})
	})
}

// RenameTeam changes a team's name, keeping names unique.
func (s *TournamentService) RenameTeam(ctx context.Context, id tournamenttypes.TeamID, name string) (tournamenttypes.Team, error) {
	var team tournamenttypes.Team
	err := s.withTelemetry(ctx, "RenameTeam", func(ctx context.Context) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return ErrEmptyTeamName
		}
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			i := next.TeamIndex(id)
			if i < 0 {
				return ErrTeamNotFound
			}
			others := make([]tournamenttypes.Team, 0, len(next.Teams)-1)
			others = append(others, next.Teams[:i]...)
			others = append(others, next.Teams[i+1:]...)
			next.Teams[i].Name = tournamenttypes.UniqueTeamName(others, name)
			team = next.Teams[i]
			return nil
		})
	})
	return team, err
}

// SetMembers replaces a team's member list.
func (s *TournamentService) SetMembers(ctx context.Context, id tournamenttypes.TeamID, members []string) error {
	return s.withTelemetry(ctx, "SetMembers", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			i := next.TeamIndex(id)
			if i < 0 {
				return ErrTeamNotFound
			}
			next.Teams[i].Members = tournamenttypes.CleanMembers(members)
			return nil
		})
	})
}
