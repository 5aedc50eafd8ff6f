package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GenerateTeams creates count teams with unique names and one to four members.
func (g *TestDataGenerator) GenerateTeams(count int) []tournamenttypes.Team {
	teams := make([]tournamenttypes.Team, 0, count)
	for i := 0; i < count; i++ {
		members := make([]string, g.faker.Number(1, tournamenttypes.MaxMembers))
		for j := range members {
			members[j] = g.faker.Name()
		}
		teams = append(teams, tournamenttypes.Team{
			ID:      tournamenttypes.TeamID(uuid.NewString()),
			Name:    g.faker.Color() + " " + g.faker.Animal(),
			Members: members,
		})
	}
	return tournamenttypes.EnsureUniqueTeamNames(teams)
}

// GenerateState creates a tournament with teamCount teams, one round of
// decided matches in every bracket event and a time for every team.
func (g *TestDataGenerator) GenerateState(teamCount int) *tournamenttypes.State {
	state := tournamenttypes.NewState()
	state.Teams = g.GenerateTeams(teamCount)
	ids := state.TeamIDs()

	for _, slot := range tournamenttypes.BracketEventSlots {
		order := make([]tournamenttypes.TeamID, len(ids))
		copy(order, ids)
		g.faker.ShuffleAnySlice(order)

		e := state.Events[slot]
		for i := 0; i+1 < len(order); i += 2 {
			m := tournamenttypes.Match{
				ID:      tournamenttypes.MatchID(uuid.NewString()),
				ATeamID: order[i],
				BTeamID: order[i+1],
			}
			if g.faker.Bool() {
				m.WinnerTeamID = m.ATeamID
			} else {
				m.WinnerTeamID = m.BTeamID
			}
			e.Matches = append(e.Matches, m)
		}
	}

	times := state.Events[tournamenttypes.TimedEventSlot].Times
	for _, id := range ids {
		times[id] = float64(g.faker.Number(300, 9000)) / 100
	}
	return state
}
