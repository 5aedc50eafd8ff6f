package tournamenttypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUniqueTeamNames(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "case-insensitive duplicates", input: []string{"Red", "red", "Red"}, want: []string{"Red", "Red (2)", "Red (3)"}},
		{name: "no duplicates", input: []string{"Red", "Blue"}, want: []string{"Red", "Blue"}},
		{name: "suffix already taken", input: []string{"Red", "Red (2)", "Red"}, want: []string{"Red", "Red (2)", "Red (3)"}},
		{name: "blank names dropped", input: []string{"  ", "Blue ", ""}, want: []string{"Blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams := make([]Team, len(tt.input))
			for i, n := range tt.input {
				teams[i] = Team{ID: TeamID(n), Name: n}
			}
			got := EnsureUniqueTeamNames(teams)
			names := make([]string, len(got))
			for i, team := range got {
				names[i] = team.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestEnsureUniqueTeamNames_SameCase(t *testing.T) {
	got := EnsureUniqueTeamNames([]Team{{Name: "Red"}, {Name: "Red"}, {Name: "Red"}})
	require.Len(t, got, 3)
	assert.Equal(t, "Red", got[0].Name)
	assert.Equal(t, "Red (2)", got[1].Name)
	assert.Equal(t, "Red (3)", got[2].Name)
}

func TestUniqueTeamName(t *testing.T) {
	teams := []Team{{Name: "Red"}, {Name: "red (2)"}}
	assert.Equal(t, "Red (3)", UniqueTeamName(teams, " Red "))
	assert.Equal(t, "Blue", UniqueTeamName(teams, "Blue"))
}

func TestCleanMembers(t *testing.T) {
	got := CleanMembers([]string{" Ann ", "", "Bo", "Cy", "  ", "Di", "Ed"})
	assert.Equal(t, []string{"Ann", "Bo", "Cy", "Di"}, got)
}

func TestNewState(t *testing.T) {
	s := NewState()
	require.Len(t, s.Events, 5)
	for _, slot := range BracketEventSlots {
		assert.NotNil(t, s.Events[slot].Matches, "slot %d", slot)
		assert.Nil(t, s.Events[slot].Times, "slot %d", slot)
	}
	assert.NotNil(t, s.Events[TimedEventSlot].Times)
	assert.Equal(t, "default", s.Settings[SettingScoringMode])
	assert.Equal(t, FormatVersion, s.FormatVersion)
}

func TestState_RemoveTeamCascades(t *testing.T) {
	s := NewState()
	s.Teams = []Team{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
	s.Events[EventBobsled].Matches = []Match{
		{ID: "m1", ATeamID: "a", BTeamID: "b", WinnerTeamID: "a"},
		{ID: "m2", ATeamID: "b", BTeamID: "c"},
	}
	s.Events[EventSkijump].Matches = []Match{{ID: "m3", ATeamID: "c", BTeamID: "a"}}
	s.Events[TimedEventSlot].Times["a"] = 10
	s.Events[TimedEventSlot].Times["b"] = 12

	require.True(t, s.RemoveTeam("a"))
	assert.Equal(t, []TeamID{"b", "c"}, s.TeamIDs())
	assert.Equal(t, []Match{{ID: "m2", ATeamID: "b", BTeamID: "c"}}, s.Events[EventBobsled].Matches)
	assert.Empty(t, s.Events[EventSkijump].Matches)
	assert.Equal(t, map[TeamID]float64{"b": 12}, s.Events[TimedEventSlot].Times)

	assert.False(t, s.RemoveTeam("missing"))
}

func TestState_Prune(t *testing.T) {
	s := NewState()
	s.Teams = []Team{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	s.Events[EventCurling].Matches = []Match{
		{ID: "m1", ATeamID: "a", BTeamID: "ghost", WinnerTeamID: "ghost"},
		{ID: "m2", ATeamID: "a", BTeamID: "b", WinnerTeamID: "b"},
	}
	s.Events[TimedEventSlot].Times["ghost"] = 3
	s.Events[TimedEventSlot].Times["a"] = 4

	dropped := s.Prune()
	assert.Equal(t, 3, dropped)
	assert.Equal(t, Match{ID: "m1", ATeamID: "a"}, s.Events[EventCurling].Matches[0])
	assert.Equal(t, Match{ID: "m2", ATeamID: "a", BTeamID: "b", WinnerTeamID: "b"}, s.Events[EventCurling].Matches[1])
	assert.Equal(t, map[TeamID]float64{"a": 4}, s.Events[TimedEventSlot].Times)
}

func TestState_EnsureEventsRepairsShapes(t *testing.T) {
	s := &State{Events: map[EventSlot]*Event{
		EventBiathlon: {Matches: []Match{{ID: "x"}}},
		9:             {},
	}}
	s.EnsureEvents()
	require.Len(t, s.Events, 5)
	assert.Nil(t, s.Events[EventBiathlon].Matches)
	assert.NotNil(t, s.Events[EventBiathlon].Times)
	assert.NotNil(t, s.Events[EventBobsled].Matches)
	assert.Equal(t, DefaultSettings(), s.Settings)
}

func TestState_CloneIsDeep(t *testing.T) {
	s := NewState()
	s.Teams = []Team{{ID: "a", Name: "A", Members: []string{"Ann"}}}
	s.Events[EventBobsled].Matches = []Match{{ID: "m1", ATeamID: "a"}}
	s.Events[TimedEventSlot].Times["a"] = 1

	c := s.Clone()
	c.Teams[0].Members[0] = "Changed"
	c.Events[EventBobsled].Matches[0].ATeamID = ""
	c.Events[TimedEventSlot].Times["a"] = 2
	c.Settings["activeView"] = "points"

	assert.Equal(t, "Ann", s.Teams[0].Members[0])
	assert.Equal(t, TeamID("a"), s.Events[EventBobsled].Matches[0].ATeamID)
	assert.Equal(t, 1.0, s.Events[TimedEventSlot].Times["a"])
	assert.Equal(t, "teams", s.Settings["activeView"])
}

func TestMatch_NormalizeWinner(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  TeamID
	}{
		{name: "winner still a side", match: Match{ATeamID: "a", BTeamID: "b", WinnerTeamID: "a"}, want: "a"},
		{name: "winner no longer a side", match: Match{ATeamID: "c", BTeamID: "b", WinnerTeamID: "a"}, want: ""},
		{name: "sides equal", match: Match{ATeamID: "a", BTeamID: "a", WinnerTeamID: "a"}, want: ""},
		{name: "no winner", match: Match{ATeamID: "a", BTeamID: "b"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.match
			m.NormalizeWinner()
			assert.Equal(t, tt.want, m.WinnerTeamID)
		})
	}
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "12.5", want: 12.5},
		{raw: " 12,5 ", want: 12.5},
		{raw: "0", want: 0},
		{raw: "", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "Inf", wantErr: true},
		{raw: "NaN", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSeconds(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSeconds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEventSlot(t *testing.T) {
	assert.Equal(t, EventKindTimed, EventBiathlon.Kind())
	assert.Equal(t, EventKindBracket, EventCurling.Kind())
	assert.Equal(t, "Ice hockey", EventIceHockey.Name())
	assert.False(t, EventSlot(6).Valid())
	assert.Equal(t, "Event 5: Skijump", EventSkijump.String())
}
