package tournamenttypes

import (
	"fmt"
	"strings"
)

// TeamID is an opaque, stable team identifier.
type TeamID string

// MaxMembers is the most members a team can list.
const MaxMembers = 4

// Team is a named group of up to four members.
type Team struct {
	ID      TeamID
	Name    string
	Members []string
}

// CleanMembers trims member names, drops blanks and caps the list at MaxMembers.
func CleanMembers(members []string) []string {
	out := make([]string, 0, MaxMembers)
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		out = append(out, m)
		if len(out) == MaxMembers {
			break
		}
	}
	return out
}

// EnsureUniqueTeamNames trims team names, drops teams whose name is blank and
// renames case-insensitive duplicates to "Name (2)", "Name (3)" and so on,
// using the lowest suffix not already taken. The suffix is appended to the
// spelling that claimed the name first.
func EnsureUniqueTeamNames(teams []Team) []Team {
	seen := make(map[string]string, len(teams))
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		name = uniqueName(seen, name)
		seen[strings.ToLower(name)] = name
		t.Name = name
		out = append(out, t)
	}
	return out
}

// UniqueTeamName returns name, suffixed if needed so it does not collide
// case-insensitively with any of the given teams.
func UniqueTeamName(teams []Team, name string) string {
	seen := make(map[string]string, len(teams))
	for _, t := range teams {
		seen[strings.ToLower(t.Name)] = t.Name
	}
	return uniqueName(seen, strings.TrimSpace(name))
}

func uniqueName(seen map[string]string, name string) string {
	base, taken := seen[strings.ToLower(name)]
	if !taken {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", base, i)
		if _, taken := seen[strings.ToLower(candidate)]; !taken {
			return candidate
		}
	}
}
