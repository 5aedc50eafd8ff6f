package resultsservice

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

var exportedAt = time.Date(2026, time.February, 6, 18, 30, 0, 0, time.UTC)

func sampleState() *tournamenttypes.State {
	s := tournamenttypes.NewState()
	s.Teams = []tournamenttypes.Team{
		{ID: "t1", Name: "Polar Bears", Members: []string{"Ada", "Linus"}},
		{ID: "t2", Name: "Snow, \"Owls\"", Members: []string{"Grace", "Ken", "Rob", "Barbara"}},
		{ID: "t3", Name: "Penguins", Members: []string{}},
	}
	s.Events[tournamenttypes.EventBobsled].Matches = []tournamenttypes.Match{
		{ID: "m1", ATeamID: "t1", BTeamID: "t2", WinnerTeamID: "t2"},
		{ID: "m2", ATeamID: "t3"},
	}
	s.Events[tournamenttypes.EventCurling].Matches = []tournamenttypes.Match{
		{ID: "m3", ATeamID: "t2", BTeamID: "t3", WinnerTeamID: "t3"},
	}
	s.Events[tournamenttypes.EventSkijump].Matches = []tournamenttypes.Match{
		{ID: "m4", ATeamID: "t3", BTeamID: "t1"},
	}
	s.Events[tournamenttypes.TimedEventSlot].Times = map[tournamenttypes.TeamID]float64{
		"t1": 12.345, "t3": 9.5,
	}
	s.Settings["theme"] = "dark"
	s.Settings["note"] = "line one\nline two"
	return s
}

var stateCmp = cmpopts.EquateEmpty()

func TestCSVRoundTrip(t *testing.T) {
	in := sampleState()

	data, err := EncodeCSV(in, exportedAt)
	require.NoError(t, err)

	out, err := DecodeCSV(data)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out, stateCmp); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	in := sampleState()

	data, err := EncodeWorkbook(in, exportedAt)
	require.NoError(t, err)

	wb, err := tabular.OpenWorkbook(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Meta", "Teams", "Event1_Matches", "Event2_Matches", "Event3_Matches", "Event5_Matches", "Event4_Times", "Settings"}, wb.SheetNames)

	out, err := DecodeWorkbook(data)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out, stateCmp); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	records := Encode(sampleState(), exportedAt)

	require.GreaterOrEqual(t, len(records), 3)
	assert.Equal(t, MetaRecord{Key: MetaApp, Value: tournamenttypes.AppName}, records[0])
	assert.Equal(t, MetaRecord{Key: MetaFormatVersion, Value: "1"}, records[1])
	assert.Equal(t, MetaRecord{Key: MetaExportedAt, Value: "2026-02-06T18:30:00Z"}, records[2])

	var types []RecordType
	var times []tournamenttypes.TeamID
	var settings []string
	for _, r := range records {
		types = append(types, r.Type())
		switch rec := r.(type) {
		case TimeRecord:
			times = append(times, rec.TeamID)
		case SettingRecord:
			settings = append(settings, rec.Key)
		}
	}
	assert.Equal(t, []tournamenttypes.TeamID{"t1", "t3"}, times)
	assert.Equal(t, []string{"activeView", "note", "scoringMode", "theme"}, settings)
	assert.NotContains(t, types, RecordTypeE2Match)
	assert.Contains(t, types, RecordTypeE3Match)
}

func TestRows_UseCanonicalColumns(t *testing.T) {
	rows := Rows([]Record{
		TimeRecord{Slot: tournamenttypes.TimedEventSlot, TeamID: "t1", Seconds: 10},
		MatchRecord{Slot: tournamenttypes.EventSkijump, MatchID: "m", ATeamID: "a", BTeamID: "b", WinnerTeamID: "a"},
	})
	for _, row := range rows {
		for k := range row {
			assert.Contains(t, Columns, k)
		}
	}
	assert.Equal(t, "e4_time", rows[0][ColRecordType])
	assert.Equal(t, "10", rows[0][ColSeconds])
	assert.Equal(t, "5", rows[1][ColEvent])
	assert.Equal(t, "e5_match", rows[1][ColRecordType])
}

func TestDecodeCSV_FormatMismatch(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "teams and settings only",
			csv:  "RecordType,TeamId,TeamName,Key,Value\nteam,t1,Red,,\nsetting,,,theme,dark\n",
		},
		{
			name: "curling matches do not sign a file",
			csv:  "RecordType,GroupId,TeamId,TeamName,ATeamId,BTeamId\nteam,,t1,Red,,\ne3_match,m1,,,t1,t2\n",
		},
		{
			name: "no teams",
			csv:  "RecordType,GroupId,ATeamId,BTeamId\ne1_match,m1,t1,t2\n",
		},
		{
			name: "foreign app",
			csv:  "RecordType,TeamId,TeamName,Seconds,Key,Value\nmeta,,,,app,Summer Games\nteam,t1,Red,,,\ne4_time,t1,,10,,\n",
		},
		{
			name: "roster file",
			csv:  "Team,Member 1,Member 2\nRed,Ann,Bob\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCSV([]byte(tt.csv))
			assert.ErrorIs(t, err, ErrFormatMismatch)
		})
	}
}

func TestDecodeCSV_SkipsMalformedRows(t *testing.T) {
	csv := strings.Join([]string{
		"RecordType,GroupId,TeamId,TeamName,Member1,ATeamId,BTeamId,WinnerTeamId,Seconds,Key,Value",
		"TEAM,,t1, Red ,Ann,,,,,,",
		"team,,t2,,Bob,,,,,,",
		"team,,t3,red,,,,,,,",
		"e1_match,,,,,t1,ghost,t1,,,",
		"e4_time,,t1,,,,,,abc,,",
		"e4_time,,t3,,,,,,\"9,5\",,",
		"e4_time,,t1,,,,,,-3,,",
		"setting,,,,,,,,,,orphan",
		"bogus,,,,,,,,,,",
	}, "\n")

	s, err := DecodeCSV([]byte(csv))
	require.NoError(t, err)

	require.Len(t, s.Teams, 2)
	assert.Equal(t, "Red", s.Teams[0].Name)
	assert.Equal(t, []string{"Ann"}, s.Teams[0].Members)
	assert.Equal(t, "Red (2)", s.Teams[1].Name)

	matches := s.Events[tournamenttypes.EventBobsled].Matches
	require.Len(t, matches, 1)
	assert.NotEmpty(t, matches[0].ID)
	assert.Equal(t, tournamenttypes.TeamID("ghost"), matches[0].BTeamID, "dangling ids are kept")

	assert.Equal(t, map[tournamenttypes.TeamID]float64{"t3": 9.5}, s.Events[tournamenttypes.TimedEventSlot].Times)
	assert.Equal(t, tournamenttypes.DefaultSettings(), s.Settings)
}

func TestDecode_LaterTeamRecordWins(t *testing.T) {
	s, err := Decode([]Record{
		TeamRecord{TeamID: "t1", Name: "First"},
		TeamRecord{TeamID: "t2", Name: "Second"},
		TeamRecord{TeamID: "t1", Name: "Renamed"},
		TimeRecord{Slot: tournamenttypes.TimedEventSlot, TeamID: "t1", Seconds: 3},
	})
	require.NoError(t, err)
	require.Len(t, s.Teams, 2)
	assert.Equal(t, "Renamed", s.Teams[0].Name)
	assert.Equal(t, "Second", s.Teams[1].Name)
}

func TestDecodeWorkbook_RequiresSignature(t *testing.T) {
	t.Run("missing meta sheet", func(t *testing.T) {
		data, err := tabular.WriteWorkbook([]tabular.Sheet{
			{Name: "Teams", Headers: []string{"TeamId", "TeamName"}, Rows: [][]any{{"t1", "Red"}}},
		})
		require.NoError(t, err)
		_, err = DecodeWorkbook(data)
		assert.ErrorIs(t, err, ErrFormatMismatch)
	})

	t.Run("foreign app", func(t *testing.T) {
		data, err := tabular.WriteWorkbook([]tabular.Sheet{
			{Name: "Meta", Headers: []string{"Key", "Value"}, Rows: [][]any{{"app", "Something else"}}},
			{Name: "Teams", Headers: []string{"TeamId", "TeamName"}, Rows: [][]any{{"t1", "Red"}}},
		})
		require.NoError(t, err)
		_, err = DecodeWorkbook(data)
		assert.ErrorIs(t, err, ErrFormatMismatch)
	})

	t.Run("team name fallback headers", func(t *testing.T) {
		data, err := tabular.WriteWorkbook([]tabular.Sheet{
			{Name: "Meta", Headers: []string{"Key", "Value"}, Rows: [][]any{{"app", tournamenttypes.AppName}}},
			{Name: "Teams", Headers: []string{"TeamId", "Team Name"}, Rows: [][]any{{"t1", "Red"}}},
		})
		require.NoError(t, err)
		s, err := DecodeWorkbook(data)
		require.NoError(t, err)
		require.Len(t, s.Teams, 1)
		assert.Equal(t, "Red", s.Teams[0].Name)
	})
}

func TestExportFilename(t *testing.T) {
	got := ExportFilename(tournamenttypes.AppSlug, "csv", time.Date(2026, time.March, 4, 9, 7, 0, 0, time.UTC))
	assert.Equal(t, "afterwork-winter-olympics_results_2026-03-04_0907.csv", got)
}
