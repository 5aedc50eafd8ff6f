package scoreservice

import (
	"math"
	"sort"
	"strings"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

// MatchWinPoints is awarded to the winner of a decided bracket match.
const MatchWinPoints = 3

// TimedPlacePoints are awarded to the four fastest teams of the timed event.
var TimedPlacePoints = []int{5, 3, 2, 1}

// TeamPoints holds a team's score per event and overall.
type TeamPoints struct {
	Events map[tournamenttypes.EventSlot]int
	Total  int
}

// Event returns the points scored in slot.
func (p TeamPoints) Event(slot tournamenttypes.EventSlot) int {
	return p.Events[slot]
}

func newTeamPoints() TeamPoints {
	events := make(map[tournamenttypes.EventSlot]int, len(tournamenttypes.AllEventSlots))
	for _, slot := range tournamenttypes.AllEventSlots {
		events[slot] = 0
	}
	return TeamPoints{Events: events}
}

// TimedEntry is one recorded time in ranking order.
type TimedEntry struct {
	TeamID  tournamenttypes.TeamID
	Seconds float64
}

// ComputePoints scores every team in the state. It does not modify state.
func ComputePoints(state *tournamenttypes.State) map[tournamenttypes.TeamID]TeamPoints {
	points := make(map[tournamenttypes.TeamID]TeamPoints, len(state.Teams))
	for _, t := range state.Teams {
		points[t.ID] = newTeamPoints()
	}

	for _, slot := range tournamenttypes.BracketEventSlots {
		e := state.Event(slot)
		if e == nil {
			continue
		}
		for _, m := range e.Matches {
			if !m.Decided() {
				continue
			}
			if p, ok := points[m.WinnerTeamID]; ok {
				p.Events[slot] += MatchWinPoints
			}
		}
	}

	for i, entry := range RankTimes(state, tournamenttypes.TimedEventSlot) {
		if i >= len(TimedPlacePoints) {
			break
		}
		if p, ok := points[entry.TeamID]; ok {
			p.Events[tournamenttypes.TimedEventSlot] += TimedPlacePoints[i]
		}
	}

	for id, p := range points {
		total := 0
		for _, v := range p.Events {
			total += v
		}
		p.Total = total
		points[id] = p
	}
	return points
}

// RankTimes orders the finite times of a timed event, fastest first. Equal
// times are ordered by team name (case-insensitive), then by team id.
func RankTimes(state *tournamenttypes.State, slot tournamenttypes.EventSlot) []TimedEntry {
	e := state.Event(slot)
	if e == nil || e.Kind() != tournamenttypes.EventKindTimed {
		return nil
	}

	names := make(map[tournamenttypes.TeamID]string, len(state.Teams))
	for _, t := range state.Teams {
		names[t.ID] = strings.ToLower(t.Name)
	}

	entries := make([]TimedEntry, 0, len(e.Times))
	for id, secs := range e.Times {
		if math.IsNaN(secs) || math.IsInf(secs, 0) {
			continue
		}
		if _, known := names[id]; !known {
			continue
		}
		entries = append(entries, TimedEntry{TeamID: id, Seconds: secs})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Seconds != b.Seconds {
			return a.Seconds < b.Seconds
		}
		if names[a.TeamID] != names[b.TeamID] {
			return names[a.TeamID] < names[b.TeamID]
		}
		return a.TeamID < b.TeamID
	})
	return entries
}
