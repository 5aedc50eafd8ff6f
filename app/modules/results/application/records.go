package resultsservice

import (
	"fmt"
	"strconv"
	"strings"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

// RecordType discriminates the rows of a results file.
type RecordType string

const (
	RecordTypeMeta    RecordType = "meta"
	RecordTypeTeam    RecordType = "team"
	RecordTypeE1Match RecordType = "e1_match"
	RecordTypeE2Match RecordType = "e2_match"
	RecordTypeE3Match RecordType = "e3_match"
	RecordTypeE5Match RecordType = "e5_match"
	RecordTypeE4Time  RecordType = "e4_time"
	RecordTypeSetting RecordType = "setting"
)

// Column names of the canonical results file, in file order.
const (
	ColRecordType   = "RecordType"
	ColEvent        = "Event"
	ColGroupID      = "GroupId"
	ColSlot         = "Slot"
	ColTeamID       = "TeamId"
	ColTeamName     = "TeamName"
	ColMember1      = "Member1"
	ColMember2      = "Member2"
	ColMember3      = "Member3"
	ColMember4      = "Member4"
	ColATeamID      = "ATeamId"
	ColBTeamID      = "BTeamId"
	ColWinnerTeamID = "WinnerTeamId"
	ColPlace        = "Place"
	ColSeconds      = "Seconds"
	ColKey          = "Key"
	ColValue        = "Value"
)

// Columns is the full column set shared by every record type.
var Columns = []string{
	ColRecordType, ColEvent, ColGroupID, ColSlot, ColTeamID, ColTeamName,
	ColMember1, ColMember2, ColMember3, ColMember4,
	ColATeamID, ColBTeamID, ColWinnerTeamID, ColPlace, ColSeconds, ColKey, ColValue,
}

var memberColumns = []string{ColMember1, ColMember2, ColMember3, ColMember4}

// Meta keys written to every export.
const (
	MetaApp           = "app"
	MetaFormatVersion = "formatVersion"
	MetaExportedAt    = "exportedAt"
)

// MatchRecordType returns the record type holding matches of a bracket slot.
func MatchRecordType(slot tournamenttypes.EventSlot) RecordType {
	return RecordType(fmt.Sprintf("e%d_match", int(slot)))
}

// TimeRecordType returns the record type holding times of the timed slot.
func TimeRecordType(slot tournamenttypes.EventSlot) RecordType {
	return RecordType(fmt.Sprintf("e%d_time", int(slot)))
}

// Record is one typed row of a results file.
type Record interface {
	Type() RecordType
	row() tabular.Record
}

// MetaRecord carries informational key/value pairs such as the app signature.
type MetaRecord struct {
	Key   string
	Value string
}

func (MetaRecord) Type() RecordType { return RecordTypeMeta }

func (r MetaRecord) row() tabular.Record {
	return tabular.Record{ColRecordType: string(RecordTypeMeta), ColKey: r.Key, ColValue: r.Value}
}

// TeamRecord is one team with up to four members.
type TeamRecord struct {
	TeamID  tournamenttypes.TeamID
	Name    string
	Members []string
}

func (TeamRecord) Type() RecordType { return RecordTypeTeam }

func (r TeamRecord) row() tabular.Record {
	row := tabular.Record{
		ColRecordType: string(RecordTypeTeam),
		ColTeamID:     string(r.TeamID),
		ColTeamName:   r.Name,
	}
	for i, col := range memberColumns {
		if i < len(r.Members) {
			row[col] = r.Members[i]
		}
	}
	return row
}

// MatchRecord is one match of a bracket event.
type MatchRecord struct {
	Slot         tournamenttypes.EventSlot
	MatchID      tournamenttypes.MatchID
	ATeamID      tournamenttypes.TeamID
	BTeamID      tournamenttypes.TeamID
	WinnerTeamID tournamenttypes.TeamID
}

func (r MatchRecord) Type() RecordType { return MatchRecordType(r.Slot) }

func (r MatchRecord) row() tabular.Record {
	return tabular.Record{
		ColRecordType:   string(r.Type()),
		ColEvent:        strconv.Itoa(int(r.Slot)),
		ColGroupID:      string(r.MatchID),
		ColATeamID:      string(r.ATeamID),
		ColBTeamID:      string(r.BTeamID),
		ColWinnerTeamID: string(r.WinnerTeamID),
	}
}

// TimeRecord is one team's recorded time in the timed event.
type TimeRecord struct {
	Slot    tournamenttypes.EventSlot
	TeamID  tournamenttypes.TeamID
	Seconds float64
}

func (r TimeRecord) Type() RecordType { return TimeRecordType(r.Slot) }

func (r TimeRecord) row() tabular.Record {
	return tabular.Record{
		ColRecordType: string(r.Type()),
		ColEvent:      strconv.Itoa(int(r.Slot)),
		ColTeamID:     string(r.TeamID),
		ColSeconds:    tournamenttypes.FormatSeconds(r.Seconds),
	}
}

// SettingRecord is one settings entry.
type SettingRecord struct {
	Key   string
	Value string
}

func (SettingRecord) Type() RecordType { return RecordTypeSetting }

func (r SettingRecord) row() tabular.Record {
	return tabular.Record{ColRecordType: string(RecordTypeSetting), ColKey: r.Key, ColValue: r.Value}
}

var matchRecordSlots = map[RecordType]tournamenttypes.EventSlot{
	RecordTypeE1Match: tournamenttypes.EventBobsled,
	RecordTypeE2Match: tournamenttypes.EventIceHockey,
	RecordTypeE3Match: tournamenttypes.EventCurling,
	RecordTypeE5Match: tournamenttypes.EventSkijump,
}

// ParseRecord validates a raw row into a typed record. Rows with an unknown
// type or missing required cells are reported with ok == false.
func ParseRecord(row tabular.Record) (Record, bool) {
	rt := RecordType(strings.ToLower(row.Get(ColRecordType)))

	if slot, isMatch := matchRecordSlots[rt]; isMatch {
		id := row.Get(ColGroupID, "MatchId")
		return MatchRecord{
			Slot:         slot,
			MatchID:      tournamenttypes.MatchID(id),
			ATeamID:      tournamenttypes.TeamID(row.Get(ColATeamID)),
			BTeamID:      tournamenttypes.TeamID(row.Get(ColBTeamID)),
			WinnerTeamID: tournamenttypes.TeamID(row.Get(ColWinnerTeamID)),
		}, true
	}

	switch rt {
	case RecordTypeMeta:
		key := row.Get(ColKey)
		if key == "" {
			return nil, false
		}
		return MetaRecord{Key: key, Value: row.Get(ColValue)}, true

	case RecordTypeTeam:
		name := firstNonEmpty(row, ColTeamName, "Team", "Team Name")
		if name == "" {
			return nil, false
		}
		members := make([]string, 0, len(memberColumns))
		for _, col := range memberColumns {
			members = append(members, row.Get(col))
		}
		return TeamRecord{
			TeamID:  tournamenttypes.TeamID(row.Get(ColTeamID)),
			Name:    name,
			Members: tournamenttypes.CleanMembers(members),
		}, true

	case RecordTypeE4Time:
		id := row.Get(ColTeamID)
		secs, err := tournamenttypes.ParseSeconds(row.Get(ColSeconds))
		if id == "" || err != nil {
			return nil, false
		}
		return TimeRecord{Slot: tournamenttypes.TimedEventSlot, TeamID: tournamenttypes.TeamID(id), Seconds: secs}, true

	case RecordTypeSetting:
		key := row.Get(ColKey)
		if key == "" {
			return nil, false
		}
		return SettingRecord{Key: key, Value: row[ColValue]}, true
	}
	return nil, false
}

func firstNonEmpty(row tabular.Record, keys ...string) string {
	for _, k := range keys {
		if v := row.Get(k); v != "" {
			return v
		}
	}
	return ""
}
