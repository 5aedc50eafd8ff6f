// Package resultsservice encodes tournament state as the canonical results
// format and decodes it back.
package resultsservice

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

// signatureTypes are the record types of which at least one must be present,
// next to a team record, for a file to count as saved results. Event 3 is
// not part of the signature.
// TODO: add RecordTypeE3Match if files holding only event 3 matches must load.
var signatureTypes = []RecordType{RecordTypeE1Match, RecordTypeE2Match, RecordTypeE4Time, RecordTypeE5Match}

// Encode flattens state into records: meta, teams, matches of slots 1, 2, 3
// and 5, times in team order and settings sorted by key.
func Encode(state *tournamenttypes.State, exportedAt time.Time) []Record {
	records := []Record{
		MetaRecord{Key: MetaApp, Value: tournamenttypes.AppName},
		MetaRecord{Key: MetaFormatVersion, Value: strconv.Itoa(tournamenttypes.FormatVersion)},
		MetaRecord{Key: MetaExportedAt, Value: exportedAt.UTC().Format(time.RFC3339)},
	}

	for _, t := range state.Teams {
		records = append(records, TeamRecord{TeamID: t.ID, Name: t.Name, Members: t.Members})
	}

	for _, slot := range tournamenttypes.BracketEventSlots {
		e := state.Event(slot)
		if e == nil {
			continue
		}
		for _, m := range e.Matches {
			records = append(records, MatchRecord{
				Slot:         slot,
				MatchID:      m.ID,
				ATeamID:      m.ATeamID,
				BTeamID:      m.BTeamID,
				WinnerTeamID: m.WinnerTeamID,
			})
		}
	}

	if e := state.Event(tournamenttypes.TimedEventSlot); e != nil {
		for _, id := range timeOrder(state, e.Times) {
			records = append(records, TimeRecord{Slot: tournamenttypes.TimedEventSlot, TeamID: id, Seconds: e.Times[id]})
		}
	}

	keys := make([]string, 0, len(state.Settings))
	for k := range state.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		records = append(records, SettingRecord{Key: k, Value: state.Settings[k]})
	}
	return records
}

// timeOrder lists the timed entries in team order, followed by entries of
// unknown teams sorted by id.
func timeOrder(state *tournamenttypes.State, times map[tournamenttypes.TeamID]float64) []tournamenttypes.TeamID {
	ids := make([]tournamenttypes.TeamID, 0, len(times))
	listed := make(map[tournamenttypes.TeamID]bool, len(times))
	for _, t := range state.Teams {
		if _, ok := times[t.ID]; ok {
			ids = append(ids, t.ID)
			listed[t.ID] = true
		}
	}
	var rest []tournamenttypes.TeamID
	for id := range times {
		if !listed[id] {
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(ids, rest...)
}

// Rows converts records to raw rows keyed by Columns.
func Rows(records []Record) []tabular.Record {
	rows := make([]tabular.Record, len(records))
	for i, r := range records {
		rows[i] = r.row()
	}
	return rows
}

// DecodeTable validates every row of a parsed results file and decodes the
// result. Malformed rows are skipped.
func DecodeTable(table *tabular.Table) (*tournamenttypes.State, error) {
	records := make([]Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		if rec, ok := ParseRecord(row); ok {
			records = append(records, rec)
		}
	}
	return Decode(records)
}

// Decode rebuilds a state from records. It fails with ErrFormatMismatch unless
// there is a team record and at least one match or time record of events 1,
// 2, 4 or 5, or when a meta app record names another application. Ids of
// unknown teams are kept as they are.
func Decode(records []Record) (*tournamenttypes.State, error) {
	present := make(map[RecordType]bool)
	for _, r := range records {
		present[r.Type()] = true
		if m, ok := r.(MetaRecord); ok && m.Key == MetaApp && m.Value != tournamenttypes.AppName {
			return nil, fmt.Errorf("%w: exported by %q", ErrFormatMismatch, m.Value)
		}
	}
	if !present[RecordTypeTeam] {
		return nil, fmt.Errorf("%w: no team records", ErrFormatMismatch)
	}
	signed := false
	for _, rt := range signatureTypes {
		signed = signed || present[rt]
	}
	if !signed {
		return nil, fmt.Errorf("%w: no match or time records", ErrFormatMismatch)
	}
	return build(records), nil
}

// build applies records to a fresh state. A later team record with an id
// already seen replaces the earlier one in place.
func build(records []Record) *tournamenttypes.State {
	state := tournamenttypes.NewState()
	index := make(map[tournamenttypes.TeamID]int)

	for _, r := range records {
		switch rec := r.(type) {
		case TeamRecord:
			id := rec.TeamID
			if id == "" {
				id = tournamenttypes.TeamID(uuid.NewString())
			}
			team := tournamenttypes.Team{ID: id, Name: rec.Name, Members: tournamenttypes.CleanMembers(rec.Members)}
			if i, seen := index[id]; seen {
				state.Teams[i] = team
				continue
			}
			index[id] = len(state.Teams)
			state.Teams = append(state.Teams, team)

		case MatchRecord:
			e := state.Event(rec.Slot)
			if e == nil || e.Kind() != tournamenttypes.EventKindBracket {
				continue
			}
			id := rec.MatchID
			if id == "" {
				id = tournamenttypes.MatchID(uuid.NewString())
			}
			e.Matches = append(e.Matches, tournamenttypes.Match{
				ID:           id,
				ATeamID:      rec.ATeamID,
				BTeamID:      rec.BTeamID,
				WinnerTeamID: rec.WinnerTeamID,
			})

		case TimeRecord:
			e := state.Event(rec.Slot)
			if e == nil || e.Kind() != tournamenttypes.EventKindTimed {
				continue
			}
			e.Times[rec.TeamID] = rec.Seconds

		case SettingRecord:
			state.Settings[rec.Key] = rec.Value
		}
	}

	state.Teams = tournamenttypes.EnsureUniqueTeamNames(state.Teams)
	return state
}

// ExportFilename names an export as {slug}_results_{YYYY-MM-DD_HHMM}.{ext}.
func ExportFilename(slug, ext string, t time.Time) string {
	return fmt.Sprintf("%s_results_%s.%s", slug, t.Format("2006-01-02_1504"), ext)
}
