package scoreservice

import (
	"fmt"
	"math/rand/v2"
	"testing"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

// generateState creates a tournament with every bracket event fully decided
// and a time for every team.
func generateState(teams int) *tournamenttypes.State {
	rng := rand.New(rand.NewPCG(uint64(teams), 1))
	state := tournamenttypes.NewState()
	for i := 0; i < teams; i++ {
		state.Teams = append(state.Teams, tournamenttypes.Team{
			ID:   tournamenttypes.TeamID(fmt.Sprintf("team-%d", i)),
			Name: fmt.Sprintf("Team %d", i),
		})
	}
	ids := state.TeamIDs()
	for _, slot := range tournamenttypes.BracketEventSlots {
		order := rng.Perm(len(ids))
		e := state.Events[slot]
		for i := 0; i+1 < len(order); i += 2 {
			a, b := ids[order[i]], ids[order[i+1]]
			winner := a
			if rng.IntN(2) == 1 {
				winner = b
			}
			e.Matches = append(e.Matches, tournamenttypes.Match{
				ID:           tournamenttypes.MatchID(fmt.Sprintf("%d-%d", slot, i)),
				ATeamID:      a,
				BTeamID:      b,
				WinnerTeamID: winner,
			})
		}
	}
	times := state.Events[tournamenttypes.TimedEventSlot].Times
	for _, id := range ids {
		times[id] = float64(rng.IntN(6000)) / 100
	}
	return state
}

func BenchmarkComputePoints(b *testing.B) {
	for _, size := range []int{8, 64, 512} {
		b.Run(fmt.Sprintf("Teams-%d", size), func(b *testing.B) {
			state := generateState(size)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_ = ComputePoints(state)
			}
		})
	}
}

func BenchmarkStandings(b *testing.B) {
	for _, size := range []int{8, 64, 512} {
		b.Run(fmt.Sprintf("Teams-%d", size), func(b *testing.B) {
			state := generateState(size)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_ = Standings(state)
			}
		})
	}
}
