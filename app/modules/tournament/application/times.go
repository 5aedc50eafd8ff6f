package tournamentservice

import (
	"context"
	"fmt"
	"strings"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

func timedEvent(state *tournamenttypes.State, slot tournamenttypes.EventSlot) (*tournamenttypes.Event, error) {
	e := state.Event(slot)
	if e == nil || e.Kind() != tournamenttypes.EventKindTimed {
		return nil, fmt.Errorf("%w: %d", ErrNotTimedEvent, int(slot))
	}
	return e, nil
}

// SetTime records a team's time from user input. Blank input removes the
// time; a comma is accepted as decimal separator.
func (s *TournamentService) SetTime(ctx context.Context, slot tournamenttypes.EventSlot, teamID tournamenttypes.TeamID, raw string) error {
	return s.withTelemetry(ctx, "SetTime", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			e, err := timedEvent(next, slot)
			if err != nil {
				return err
			}
			if next.TeamIndex(teamID) < 0 {
				return ErrTeamNotFound
			}
			if strings.TrimSpace(raw) == "" {
				delete(e.Times, teamID)
				return nil
			}
			secs, err := tournamenttypes.ParseSeconds(raw)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidTime, raw)
			}
			e.Times[teamID] = secs
			return nil
		})
	})
}

// ClearTimes removes every time of a timed event.
func (s *TournamentService) ClearTimes(ctx context.Context, slot tournamenttypes.EventSlot) error {
	return s.withTelemetry(ctx, "ClearTimes", func(ctx context.Context) error {
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			e, err := timedEvent(next, slot)
			if err != nil {
				return err
			}
			clear(e.Times)
			return nil
		})
	})
}
