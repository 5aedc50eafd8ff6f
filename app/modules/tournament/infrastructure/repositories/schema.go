package tournamentdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

var (
	// ErrCorruptSnapshot is returned when a payload cannot be read at all.
	ErrCorruptSnapshot = errors.New("snapshot payload is corrupt")
	// ErrUnsupportedVersion is returned for payloads written by a newer release.
	ErrUnsupportedVersion = errors.New("snapshot format version is not supported")
)

// Snapshot payloads are versioned by their formatVersion field. Version 0 is
// the layout written by the browser release, which had no version field.
const (
	schemaV0 = 0
	schemaV1 = 1
)

type stateV1 struct {
	FormatVersion int                `json:"formatVersion"`
	Teams         []teamV1           `json:"teams"`
	Events        map[string]eventV1 `json:"events"`
	Settings      map[string]string  `json:"settings"`
}

type teamV1 struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type eventV1 struct {
	Matches []matchV1          `json:"matches,omitempty"`
	Times   map[string]float64 `json:"times,omitempty"`
}

type matchV1 struct {
	ID           string `json:"id"`
	ATeamID      string `json:"aTeamId"`
	BTeamID      string `json:"bTeamId"`
	WinnerTeamID string `json:"winnerTeamId,omitempty"`
}

type stateV0 struct {
	Teams    []teamV0                   `json:"teams"`
	Events   map[string]json.RawMessage `json:"events"`
	Settings map[string]any             `json:"settings"`
}

type teamV0 struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Members []any  `json:"members"`
}

type eventV0 struct {
	Matches []matchV0           `json:"matches"`
	Times   map[string]*float64 `json:"times"`
}

type matchV0 struct {
	ID           *string `json:"id"`
	ATeamID      *string `json:"aTeamId"`
	BTeamID      *string `json:"bTeamId"`
	WinnerTeamID *string `json:"winnerTeamId"`
}

// NewSnapshot serializes state as the current payload version.
func NewSnapshot(key string, state *tournamenttypes.State) (*Snapshot, error) {
	doc := stateV1{
		FormatVersion: schemaV1,
		Teams:         make([]teamV1, 0, len(state.Teams)),
		Events:        make(map[string]eventV1, len(state.Events)),
		Settings:      state.Settings,
	}
	for _, t := range state.Teams {
		doc.Teams = append(doc.Teams, teamV1{ID: string(t.ID), Name: t.Name, Members: t.Members})
	}
	for slot, e := range state.Events {
		if e == nil {
			continue
		}
		var ev eventV1
		for _, m := range e.Matches {
			ev.Matches = append(ev.Matches, matchV1{
				ID:           string(m.ID),
				ATeamID:      string(m.ATeamID),
				BTeamID:      string(m.BTeamID),
				WinnerTeamID: string(m.WinnerTeamID),
			})
		}
		if e.Times != nil {
			ev.Times = make(map[string]float64, len(e.Times))
			for id, secs := range e.Times {
				ev.Times[string(id)] = secs
			}
		}
		doc.Events[strconv.Itoa(int(slot))] = ev
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return &Snapshot{Key: key, FormatVersion: schemaV1, Payload: string(payload)}, nil
}

// MigrateSnapshot reads a payload of any known version into the current
// state model. Missing events are filled in; references to unknown teams are
// left for the caller to prune.
func MigrateSnapshot(payload []byte) (*tournamenttypes.State, error) {
	var probe struct {
		FormatVersion *int `json:"formatVersion"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	version := schemaV0
	if probe.FormatVersion != nil {
		version = *probe.FormatVersion
	}

	var (
		state *tournamenttypes.State
		err   error
	)
	switch version {
	case schemaV0:
		state, err = migrateV0(payload)
	case schemaV1:
		state, err = decodeV1(payload)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if err != nil {
		return nil, err
	}
	state.FormatVersion = tournamenttypes.FormatVersion
	state.EnsureEvents()
	return state, nil
}

func decodeV1(payload []byte) (*tournamenttypes.State, error) {
	var doc stateV1
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	state := tournamenttypes.NewState()
	for _, t := range doc.Teams {
		state.Teams = append(state.Teams, tournamenttypes.Team{
			ID:      tournamenttypes.TeamID(t.ID),
			Name:    t.Name,
			Members: tournamenttypes.CleanMembers(t.Members),
		})
	}
	for key, ev := range doc.Events {
		e := eventAt(state, key)
		if e == nil {
			continue
		}
		for _, m := range ev.Matches {
			e.Matches = append(e.Matches, tournamenttypes.Match{
				ID:           tournamenttypes.MatchID(m.ID),
				ATeamID:      tournamenttypes.TeamID(m.ATeamID),
				BTeamID:      tournamenttypes.TeamID(m.BTeamID),
				WinnerTeamID: tournamenttypes.TeamID(m.WinnerTeamID),
			})
		}
		for id, secs := range ev.Times {
			setTime(e, id, secs)
		}
	}
	if doc.Settings != nil {
		state.Settings = doc.Settings
	}
	return state, nil
}

func migrateV0(payload []byte) (*tournamenttypes.State, error) {
	var doc stateV0
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	state := tournamenttypes.NewState()
	for _, t := range doc.Teams {
		members := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			if s, ok := m.(string); ok {
				members = append(members, s)
			}
		}
		state.Teams = append(state.Teams, tournamenttypes.Team{
			ID:      tournamenttypes.TeamID(t.ID),
			Name:    t.Name,
			Members: tournamenttypes.CleanMembers(members),
		})
	}

	// Event shapes were repaired on load by the browser release, so a single
	// malformed event is dropped rather than failing the whole snapshot.
	for key, raw := range doc.Events {
		e := eventAt(state, key)
		if e == nil {
			continue
		}
		var ev eventV0
		if err := json.Unmarshal(raw, &ev); err != nil {
			continue
		}
		for _, m := range ev.Matches {
			e.Matches = append(e.Matches, tournamenttypes.Match{
				ID:           tournamenttypes.MatchID(deref(m.ID)),
				ATeamID:      tournamenttypes.TeamID(deref(m.ATeamID)),
				BTeamID:      tournamenttypes.TeamID(deref(m.BTeamID)),
				WinnerTeamID: tournamenttypes.TeamID(deref(m.WinnerTeamID)),
			})
		}
		for id, secs := range ev.Times {
			if secs != nil {
				setTime(e, id, *secs)
			}
		}
	}

	for k, v := range doc.Settings {
		switch val := v.(type) {
		case nil:
		case string:
			state.Settings[k] = val
		default:
			state.Settings[k] = fmt.Sprint(val)
		}
	}
	return state, nil
}

// eventAt returns the event for a slot key, or nil for keys outside 1..5.
func eventAt(state *tournamenttypes.State, key string) *tournamenttypes.Event {
	n, err := strconv.Atoi(key)
	if err != nil {
		return nil
	}
	return state.Event(tournamenttypes.EventSlot(n))
}

func setTime(e *tournamenttypes.Event, id string, secs float64) {
	if e.Times == nil || id == "" || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return
	}
	e.Times[tournamenttypes.TeamID(id)] = secs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
