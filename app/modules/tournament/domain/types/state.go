package tournamenttypes

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	// AppName is written to exported results and checked on import.
	AppName = "Afterwork Winter Olympics"
	// AppSlug prefixes exported file names.
	AppSlug = "afterwork-winter-olympics"
	// FormatVersion is the current results and snapshot format version.
	FormatVersion = 1
)

// Setting keys known to the presentation layer.
const (
	SettingScoringMode = "scoringMode"
	SettingActiveView  = "activeView"
)

// DefaultSettings returns the settings of a fresh tournament.
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingScoringMode: "default",
		SettingActiveView:  "teams",
	}
}

// State is the whole tournament: teams in display order, the five events and free-form settings.
type State struct {
	Teams         []Team
	Events        map[EventSlot]*Event
	Settings      map[string]string
	FormatVersion int
}

// NewState returns an empty tournament with default settings.
func NewState() *State {
	s := &State{
		Teams:         []Team{},
		Events:        make(map[EventSlot]*Event, len(AllEventSlots)),
		Settings:      DefaultSettings(),
		FormatVersion: FormatVersion,
	}
	s.EnsureEvents()
	return s
}

// NewEvents returns five empty events.
func NewEvents() map[EventSlot]*Event {
	events := make(map[EventSlot]*Event, len(AllEventSlots))
	for _, slot := range AllEventSlots {
		events[slot] = NewEvent(slot)
	}
	return events
}

// EnsureEvents fills in any missing or wrongly shaped event.
func (s *State) EnsureEvents() {
	if s.Events == nil {
		s.Events = make(map[EventSlot]*Event, len(AllEventSlots))
	}
	for slot := range s.Events {
		if !slot.Valid() {
			delete(s.Events, slot)
		}
	}
	for _, slot := range AllEventSlots {
		e, ok := s.Events[slot]
		if !ok || e == nil {
			s.Events[slot] = NewEvent(slot)
			continue
		}
		e.Slot = slot
		if slot.Kind() == EventKindTimed {
			e.Matches = nil
			if e.Times == nil {
				e.Times = make(map[TeamID]float64)
			}
		} else {
			e.Times = nil
			if e.Matches == nil {
				e.Matches = []Match{}
			}
		}
	}
	if s.Settings == nil {
		s.Settings = DefaultSettings()
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := &State{
		Teams:         make([]Team, len(s.Teams)),
		Events:        make(map[EventSlot]*Event, len(s.Events)),
		Settings:      make(map[string]string, len(s.Settings)),
		FormatVersion: s.FormatVersion,
	}
	for i, t := range s.Teams {
		t.Members = slices.Clone(t.Members)
		out.Teams[i] = t
	}
	for slot, e := range s.Events {
		if e != nil {
			out.Events[slot] = e.clone()
		}
	}
	for k, v := range s.Settings {
		out.Settings[k] = v
	}
	return out
}

// Event returns the event stored at slot, or nil.
func (s *State) Event(slot EventSlot) *Event {
	return s.Events[slot]
}

// TeamIndex returns the index of the team with id, or -1.
func (s *State) TeamIndex(id TeamID) int {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return i
		}
	}
	return -1
}

// Team returns the team with id.
func (s *State) Team(id TeamID) (Team, bool) {
	if i := s.TeamIndex(id); i >= 0 {
		return s.Teams[i], true
	}
	return Team{}, false
}

// TeamIDs returns all team ids in display order.
func (s *State) TeamIDs() []TeamID {
	ids := make([]TeamID, len(s.Teams))
	for i, t := range s.Teams {
		ids[i] = t.ID
	}
	return ids
}

// FindMatch locates a match in any bracket event.
func (s *State) FindMatch(id MatchID) (*Match, EventSlot, bool) {
	for _, slot := range BracketEventSlots {
		e := s.Events[slot]
		if e == nil {
			continue
		}
		for i := range e.Matches {
			if e.Matches[i].ID == id {
				return &e.Matches[i], slot, true
			}
		}
	}
	return nil, 0, false
}

// RemoveTeam deletes the team, every match it plays in and its recorded time.
// It reports whether the team existed.
func (s *State) RemoveTeam(id TeamID) bool {
	i := s.TeamIndex(id)
	if i < 0 {
		return false
	}
	s.Teams = append(s.Teams[:i], s.Teams[i+1:]...)
	for _, slot := range BracketEventSlots {
		e := s.Events[slot]
		if e == nil {
			continue
		}
		kept := e.Matches[:0]
		for _, m := range e.Matches {
			if !m.Involves(id) {
				kept = append(kept, m)
			}
		}
		e.Matches = kept
	}
	if e := s.Events[TimedEventSlot]; e != nil {
		delete(e.Times, id)
	}
	return true
}

// Prune drops references to teams that do not exist: dangling times are
// deleted, dangling match sides cleared, and invalid winners cleared.
// It returns the number of references dropped.
func (s *State) Prune() int {
	s.EnsureEvents()
	known := make(map[TeamID]struct{}, len(s.Teams))
	for _, t := range s.Teams {
		known[t.ID] = struct{}{}
	}
	exists := func(id TeamID) bool {
		_, ok := known[id]
		return ok
	}

	dropped := 0
	for _, slot := range BracketEventSlots {
		e := s.Events[slot]
		for i := range e.Matches {
			m := &e.Matches[i]
			if m.ATeamID != "" && !exists(m.ATeamID) {
				m.ATeamID = ""
				dropped++
			}
			if m.BTeamID != "" && !exists(m.BTeamID) {
				m.BTeamID = ""
				dropped++
			}
			if m.WinnerTeamID != "" && !m.CanWin(m.WinnerTeamID) {
				m.WinnerTeamID = ""
				dropped++
			}
		}
	}
	times := s.Events[TimedEventSlot].Times
	for id := range times {
		if !exists(id) {
			delete(times, id)
			dropped++
		}
	}
	return dropped
}

// ErrInvalidSeconds is returned by ParseSeconds for unusable input.
var ErrInvalidSeconds = errors.New("time must be a non-negative number of seconds")

// ParseSeconds parses an elapsed time, accepting a comma as decimal separator.
func ParseSeconds(raw string) (float64, error) {
	v := strings.TrimSpace(strings.Replace(raw, ",", ".", 1))
	if v == "" {
		return 0, ErrInvalidSeconds
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, ErrInvalidSeconds
	}
	return n, nil
}

// FormatSeconds renders seconds so that ParseSeconds returns the same value.
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
