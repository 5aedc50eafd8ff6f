package tournamentservice

import (
	"context"
	"fmt"
	"log/slog"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

// ByeNotice reports the team left without an opponent in one event.
type ByeNotice struct {
	Slot     tournamenttypes.EventSlot
	TeamID   tournamenttypes.TeamID
	TeamName string
}

func (b ByeNotice) String() string {
	return fmt.Sprintf("Event %d: %s gets a bye", int(b.Slot), b.TeamName)
}

func bracketEvent(state *tournamenttypes.State, slot tournamenttypes.EventSlot) (*tournamenttypes.Event, error) {
	e := state.Event(slot)
	if e == nil || e.Kind() != tournamenttypes.EventKindBracket {
		return nil, fmt.Errorf("%w: %d", ErrNotBracketEvent, int(slot))
	}
	return e, nil
}

// AddMatch appends an empty match to a bracket event.
func (s *TournamentService) AddMatch(ctx context.Context, slot tournamenttypes.EventSlot) (tournamenttypes.Match, error) {
	var match tournamenttypes.Match
	err := s.withTelemetry(ctx, "AddMatch", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			e, err := bracketEvent(next, slot)
			if err != nil {
				return err
			}
			if len(next.Teams) < 2 {
				return ErrNotEnoughTeams
			}
			match = tournamenttypes.Match{ID: tournamenttypes.MatchID(s.newID())}
			e.Matches = append(e.Matches, match)
			return nil
		})
	})
	return match, err
}

// RemoveMatch deletes a match from whichever event holds it.
func (s *TournamentService) RemoveMatch(ctx context.Context, id tournamenttypes.MatchID) error {
	return s.withTelemetry(ctx, "RemoveMatch", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			_, slot, ok := next.FindMatch(id)
			if !ok {
				return ErrMatchNotFound
			}
			e := next.Event(slot)
			kept := e.Matches[:0]
			for _, m := range e.Matches {
				if m.ID != id {
					kept = append(kept, m)
				}
			}
			e.Matches = kept
			return nil
		})
	})
}

// SetMatchSide puts a team on side a or b. An empty teamID clears the side.
// A winner that no longer fits the match is cleared.
func (s *TournamentService) SetMatchSide(ctx context.Context, id tournamenttypes.MatchID, side tournamenttypes.Side, teamID tournamenttypes.TeamID) error {
	return s.withTelemetry(ctx, "SetMatchSide", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			m, _, ok := next.FindMatch(id)
			if !ok {
				return ErrMatchNotFound
			}
			if teamID != "" && next.TeamIndex(teamID) < 0 {
				return ErrTeamNotFound
			}

			var target, opposite *tournamenttypes.TeamID
			switch side {
			case tournamenttypes.SideA:
				target, opposite = &m.ATeamID, &m.BTeamID
			case tournamenttypes.SideB:
				target, opposite = &m.BTeamID, &m.ATeamID
			default:
				return fmt.Errorf("%w: %q", ErrInvalidSide, side)
			}
			if teamID != "" && teamID == *opposite {
				return ErrSameTeamBothSides
			}
			*target = teamID
			m.NormalizeWinner()
			return nil
		})
	})
}

// SetWinner records the winner of a match. An empty teamID clears it.
func (s *TournamentService) SetWinner(ctx context.Context, id tournamenttypes.MatchID, teamID tournamenttypes.TeamID) error {
	return s.withTelemetry(ctx, "SetWinner", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			m, _, ok := next.FindMatch(id)
			if !ok {
				return ErrMatchNotFound
			}
			if teamID != "" && !m.CanWin(teamID) {
				return ErrInvalidWinner
			}
			m.WinnerTeamID = teamID
			return nil
		})
	})
}

// GenerateRandomMatchups replaces the matches of every bracket event with a
// fresh random pairing, shuffled independently per event. With an odd number
// of teams the last shuffled team of each event gets a bye.
func (s *TournamentService) GenerateRandomMatchups(ctx context.Context) ([]ByeNotice, error) {
	var byes []ByeNotice
	err := s.withTelemetry(ctx, "GenerateRandomMatchups", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			if len(next.Teams) < 2 {
				return ErrNotEnoughTeams
			}
			byes = byes[:0]
			for _, slot := range tournamenttypes.BracketEventSlots {
				ids := next.TeamIDs()
				s.shuffle(ids)

				matches := make([]tournamenttypes.Match, 0, len(ids)/2)
				for i := 0; i+1 < len(ids); i += 2 {
					matches = append(matches, tournamenttypes.Match{
						ID:      tournamenttypes.MatchID(s.newID()),
						ATeamID: ids[i],
						BTeamID: ids[i+1],
					})
				}
				next.Events[slot].Matches = matches

				if len(ids)%2 == 1 {
					bye := ids[len(ids)-1]
					team, _ := next.Team(bye)
					byes = append(byes, ByeNotice{Slot: slot, TeamID: bye, TeamName: team.Name})
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	for _, b := range byes {
		s.logger.InfoContext(ctx, "Bye assigned", slog.Int("event", int(b.Slot)), slog.String("team_id", string(b.TeamID)))
	}
	return byes, nil
}

// shuffle is a Fisher-Yates shuffle over the service's random source.
func (s *TournamentService) shuffle(ids []tournamenttypes.TeamID) {
	for i := len(ids) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
