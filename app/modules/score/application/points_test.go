package scoreservice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

func stateWithTeams(names ...string) *tournamenttypes.State {
	s := tournamenttypes.NewState()
	for _, n := range names {
		s.Teams = append(s.Teams, tournamenttypes.Team{ID: tournamenttypes.TeamID(n), Name: n})
	}
	return s
}

func TestComputePoints_TimedEvent(t *testing.T) {
	s := stateWithTeams("A", "B", "C", "D", "E")
	s.Events[tournamenttypes.TimedEventSlot].Times = map[tournamenttypes.TeamID]float64{
		"A": 12.3, "B": 10.0, "C": 15.0, "D": 9.5, "E": 20.0,
	}

	points := ComputePoints(s)
	want := map[tournamenttypes.TeamID]int{"D": 5, "B": 3, "A": 2, "C": 1, "E": 0}
	for id, p := range want {
		assert.Equal(t, p, points[id].Event(tournamenttypes.TimedEventSlot), "team %s", id)
		assert.Equal(t, p, points[id].Total, "team %s", id)
	}
}

func TestComputePoints_BracketEvents(t *testing.T) {
	s := stateWithTeams("A", "B", "C")
	s.Events[tournamenttypes.EventBobsled].Matches = []tournamenttypes.Match{
		{ID: "m1", ATeamID: "A", BTeamID: "B", WinnerTeamID: "A"},
		{ID: "m2", ATeamID: "A", BTeamID: "", WinnerTeamID: "A"},
		{ID: "m3", ATeamID: "B", BTeamID: "C"},
	}
	s.Events[tournamenttypes.EventSkijump].Matches = []tournamenttypes.Match{
		{ID: "m4", ATeamID: "C", BTeamID: "A", WinnerTeamID: "C"},
	}
	s.Events[tournamenttypes.EventCurling].Matches = []tournamenttypes.Match{
		{ID: "m5", ATeamID: "A", BTeamID: "C", WinnerTeamID: "A"},
	}

	points := ComputePoints(s)
	assert.Equal(t, 3, points["A"].Event(tournamenttypes.EventBobsled))
	assert.Equal(t, 3, points["A"].Event(tournamenttypes.EventCurling))
	assert.Equal(t, 6, points["A"].Total)
	assert.Equal(t, 0, points["B"].Total)
	assert.Equal(t, 3, points["C"].Event(tournamenttypes.EventSkijump))
	assert.Equal(t, 3, points["C"].Total)
}

func TestComputePoints_NeverScoresUndecidedMatches(t *testing.T) {
	matches := []tournamenttypes.Match{
		{ID: "no winner", ATeamID: "A", BTeamID: "B"},
		{ID: "missing b", ATeamID: "A", WinnerTeamID: "A"},
		{ID: "missing a", BTeamID: "B", WinnerTeamID: "B"},
		{ID: "empty"},
	}
	for _, slot := range tournamenttypes.BracketEventSlots {
		s := stateWithTeams("A", "B")
		s.Events[slot].Matches = matches
		for id, p := range ComputePoints(s) {
			assert.Zero(t, p.Total, "team %s slot %d", id, slot)
		}
	}
}

func TestComputePoints_DoesNotMutateState(t *testing.T) {
	s := stateWithTeams("A", "B")
	s.Events[tournamenttypes.EventBobsled].Matches = []tournamenttypes.Match{{ID: "m1", ATeamID: "A", BTeamID: "B", WinnerTeamID: "B"}}
	s.Events[tournamenttypes.TimedEventSlot].Times["A"] = 1
	before := s.Clone()

	first := ComputePoints(s)
	second := ComputePoints(s)
	assert.Equal(t, first, second)
	assert.Equal(t, before, s)
}

func TestRankTimes_TieBreakByName(t *testing.T) {
	s := tournamenttypes.NewState()
	s.Teams = []tournamenttypes.Team{{ID: "z", Name: "bravo"}, {ID: "y", Name: "Alpha"}, {ID: "x", Name: "charlie"}}
	s.Events[tournamenttypes.TimedEventSlot].Times = map[tournamenttypes.TeamID]float64{"z": 10, "y": 10, "x": 9, "ghost": 1}

	got := RankTimes(s, tournamenttypes.TimedEventSlot)
	require.Len(t, got, 3)
	assert.Equal(t, []tournamenttypes.TeamID{"x", "y", "z"}, []tournamenttypes.TeamID{got[0].TeamID, got[1].TeamID, got[2].TeamID})

	assert.Nil(t, RankTimes(s, tournamenttypes.EventBobsled))
}

func TestStandings(t *testing.T) {
	s := stateWithTeams("charlie", "Alpha", "bravo")
	s.Events[tournamenttypes.EventBobsled].Matches = []tournamenttypes.Match{{ID: "m1", ATeamID: "bravo", BTeamID: "charlie", WinnerTeamID: "bravo"}}

	got := Standings(s)
	require.Len(t, got, 3)
	assert.Equal(t, "bravo", got[0].Team.Name)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "Alpha", got[1].Team.Name)
	assert.Equal(t, 2, got[1].Rank)
	assert.Equal(t, "charlie", got[2].Team.Name)
	assert.Equal(t, 2, got[2].Rank)
}

func TestGenerateStandingsChart(t *testing.T) {
	pngMagic := []byte("\x89PNG")

	t.Run("with points", func(t *testing.T) {
		s := stateWithTeams("A", "B")
		s.Events[tournamenttypes.EventBobsled].Matches = []tournamenttypes.Match{{ID: "m1", ATeamID: "A", BTeamID: "B", WinnerTeamID: "A"}}
		img, err := GenerateStandingsChart(Standings(s), DefaultPalette)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(img, pngMagic))
	})

	t.Run("no points", func(t *testing.T) {
		img, err := GenerateStandingsChart(nil, DefaultPalette)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(img, pngMagic))
	})
}
