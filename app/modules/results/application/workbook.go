package resultsservice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

// Sheet names of a results workbook.
const (
	SheetMeta     = "Meta"
	SheetTeams    = "Teams"
	SheetTimes    = "Event4_Times"
	SheetSettings = "Settings"
)

// MatchSheetName returns the sheet holding matches of a bracket slot.
func MatchSheetName(slot tournamenttypes.EventSlot) string {
	return fmt.Sprintf("Event%d_Matches", int(slot))
}

// EncodeWorkbook renders state as a results workbook with one sheet per
// record kind and event.
func EncodeWorkbook(state *tournamenttypes.State, exportedAt time.Time) ([]byte, error) {
	meta := tabular.Sheet{Name: SheetMeta, Headers: []string{ColKey, ColValue}}
	teams := tabular.Sheet{Name: SheetTeams, Headers: []string{ColTeamID, ColTeamName, ColMember1, ColMember2, ColMember3, ColMember4}}
	matches := make(map[tournamenttypes.EventSlot]*tabular.Sheet, len(tournamenttypes.BracketEventSlots))
	for _, slot := range tournamenttypes.BracketEventSlots {
		matches[slot] = &tabular.Sheet{
			Name:    MatchSheetName(slot),
			Headers: []string{"MatchId", ColATeamID, ColBTeamID, ColWinnerTeamID},
		}
	}
	times := tabular.Sheet{Name: SheetTimes, Headers: []string{ColTeamID, ColSeconds}}
	settings := tabular.Sheet{Name: SheetSettings, Headers: []string{ColKey, ColValue}}

	for _, r := range Encode(state, exportedAt) {
		switch rec := r.(type) {
		case MetaRecord:
			var v any = rec.Value
			if rec.Key == MetaFormatVersion {
				if n, err := strconv.Atoi(rec.Value); err == nil {
					v = n
				}
			}
			meta.Rows = append(meta.Rows, []any{rec.Key, v})
		case TeamRecord:
			row := []any{string(rec.TeamID), rec.Name, "", "", "", ""}
			for i, m := range rec.Members {
				if i < 4 {
					row[2+i] = m
				}
			}
			teams.Rows = append(teams.Rows, row)
		case MatchRecord:
			sh := matches[rec.Slot]
			sh.Rows = append(sh.Rows, []any{string(rec.MatchID), string(rec.ATeamID), string(rec.BTeamID), string(rec.WinnerTeamID)})
		case TimeRecord:
			times.Rows = append(times.Rows, []any{string(rec.TeamID), rec.Seconds})
		case SettingRecord:
			settings.Rows = append(settings.Rows, []any{rec.Key, rec.Value})
		}
	}

	sheets := []tabular.Sheet{meta, teams}
	for _, slot := range tournamenttypes.BracketEventSlots {
		sheets = append(sheets, *matches[slot])
	}
	sheets = append(sheets, times, settings)

	data, err := tabular.WriteWorkbook(sheets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results workbook: %w", err)
	}
	return data, nil
}

// DecodeWorkbook reads a results workbook. The workbook must have a Meta
// sheet naming this application and a Teams sheet; match and time sheets are
// optional.
func DecodeWorkbook(data []byte) (*tournamenttypes.State, error) {
	wb, err := tabular.OpenWorkbook(data)
	if err != nil {
		return nil, err
	}
	return decodeWorkbook(wb)
}

func decodeWorkbook(wb *tabular.Workbook) (*tournamenttypes.State, error) {
	meta, teams := wb.Sheet(SheetMeta), wb.Sheet(SheetTeams)
	if meta == nil || teams == nil {
		return nil, fmt.Errorf("%w: workbook needs %s and %s sheets", ErrFormatMismatch, SheetMeta, SheetTeams)
	}

	app := ""
	for _, row := range meta.Rows {
		if strings.EqualFold(row.Get(ColKey), MetaApp) {
			app = row.Get(ColValue)
			break
		}
	}
	if app != tournamenttypes.AppName {
		return nil, fmt.Errorf("%w: workbook is not signed by %q", ErrFormatMismatch, tournamenttypes.AppName)
	}

	var records []Record
	collect := func(table *tabular.Table, rt RecordType) {
		if table == nil {
			return
		}
		for _, row := range table.Rows {
			typed := make(tabular.Record, len(row)+1)
			for k, v := range row {
				typed[k] = v
			}
			typed[ColRecordType] = string(rt)
			if rec, ok := ParseRecord(typed); ok {
				records = append(records, rec)
			}
		}
	}

	collect(teams, RecordTypeTeam)
	for _, slot := range tournamenttypes.BracketEventSlots {
		collect(wb.Sheet(MatchSheetName(slot)), MatchRecordType(slot))
	}
	collect(wb.Sheet(SheetTimes), RecordTypeE4Time)
	collect(wb.Sheet(SheetSettings), RecordTypeSetting)

	return build(records), nil
}
