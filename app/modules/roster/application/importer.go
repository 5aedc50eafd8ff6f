package rosterservice

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

// PoolTeamName is the placeholder name given to teams built from the open pool.
const PoolTeamName = "Enter Team Name"

var (
	teamColumnNames = []string{"team", "team name", "teamname"}
	poolColumnNames = []string{"open team pool", "open pool", "pool"}
	memberColumns   = []string{
		"member 1", "member 2", "member 3", "member 4",
		"player 1", "player 2", "player 3", "player 4",
		"name 1", "name 2", "name 3", "name 4",
		"team member 1", "team member 2", "team member 3", "team member 4",
	}
)

// Result is the outcome of a roster import.
type Result struct {
	Teams    []tournamenttypes.Team
	Warnings []string
}

// Columns records which headers the importer resolved.
type Columns struct {
	Team        string
	TeamFound   bool
	Members     []string
	Pool        string
	PoolPresent bool
}

// Importer maps arbitrary roster sheets onto teams.
type Importer struct {
	rng   *rand.Rand
	newID func() tournamenttypes.TeamID
}

// Option configures an Importer.
type Option func(*Importer)

// WithRand sets the source used to shuffle open pool participants.
func WithRand(rng *rand.Rand) Option {
	return func(i *Importer) { i.rng = rng }
}

// WithIDGenerator sets the team id generator.
func WithIDGenerator(fn func() tournamenttypes.TeamID) Option {
	return func(i *Importer) { i.newID = fn }
}

// NewImporter creates a roster importer.
func NewImporter(opts ...Option) *Importer {
	i := &Importer{
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID: func() tournamenttypes.TeamID { return tournamenttypes.TeamID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NormalizeHeader lower-cases a header and collapses its whitespace.
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

// ResolveColumns picks the team, member and open pool columns from headers.
func ResolveColumns(headers []string) Columns {
	normalized := make(map[string]string, len(headers))
	for _, h := range headers {
		// later duplicates win, like the record mapping
		normalized[NormalizeHeader(h)] = h
	}
	lookup := func(candidates []string) (string, bool) {
		for _, c := range candidates {
			if h, ok := normalized[c]; ok {
				return h, true
			}
		}
		return "", false
	}

	var cols Columns
	cols.Team, cols.TeamFound = lookup(teamColumnNames)
	if !cols.TeamFound && len(headers) > 0 {
		cols.Team = headers[0]
	}

	for _, c := range memberColumns {
		if h, ok := normalized[c]; ok {
			cols.Members = append(cols.Members, h)
		}
	}

	// Unnamed member columns: assume the four after the team column.
	if len(cols.Members) < tournamenttypes.MaxMembers && len(headers) >= 5 {
		idx := indexOf(headers, cols.Team)
		end := min(idx+1+tournamenttypes.MaxMembers, len(headers))
		for _, h := range headers[idx+1 : end] {
			if indexOf(cols.Members, h) < 0 {
				cols.Members = append(cols.Members, h)
			}
		}
	}
	if len(cols.Members) > tournamenttypes.MaxMembers {
		cols.Members = cols.Members[:tournamenttypes.MaxMembers]
	}

	cols.Pool, cols.PoolPresent = lookup(poolColumnNames)
	return cols
}

// Import builds teams from a roster table. Problems are reported as warnings,
// never as errors.
func (i *Importer) Import(table *tabular.Table) Result {
	if table == nil || len(table.Rows) == 0 {
		return Result{Teams: []tournamenttypes.Team{}, Warnings: []string{"No rows found."}}
	}

	cols := ResolveColumns(table.Headers)
	var warnings []string
	if !cols.TeamFound {
		warnings = append(warnings, fmt.Sprintf("Could not detect team name column; using %q.", cols.Team))
	}

	var (
		teams []tournamenttypes.Team
		pool  []string
	)
	for _, row := range table.Rows {
		if name := row.Get(cols.Team); name != "" {
			members := make([]string, 0, len(cols.Members))
			for _, mk := range cols.Members {
				members = append(members, row[mk])
			}
			teams = append(teams, tournamenttypes.Team{
				ID:      i.newID(),
				Name:    name,
				Members: tournamenttypes.CleanMembers(members),
			})
		}

		if cols.PoolPresent {
			if p := row.Get(cols.Pool); p != "" {
				pool = append(pool, p)
			}
		}
	}

	if len(pool) > 0 {
		poolTeams := i.poolTeams(pool)
		teams = append(teams, poolTeams...)
		warnings = append(warnings, fmt.Sprintf("%d open pool player(s) randomly assigned to %d team(s).", len(pool), len(poolTeams)))
	}

	unique := tournamenttypes.EnsureUniqueTeamNames(teams)
	if len(unique) == 0 {
		warnings = append(warnings, "No teams imported. Check your sheet format.")
	}
	renamed := false
	for k := range unique {
		if unique[k].Name != strings.TrimSpace(teams[k].Name) {
			renamed = true
			break
		}
	}
	if renamed {
		warnings = append(warnings, "Duplicate team names were renamed automatically.")
	}

	return Result{Teams: unique, Warnings: warnings}
}

func (i *Importer) poolTeams(names []string) []tournamenttypes.Team {
	shuffled := append([]string(nil), names...)
	i.rng.Shuffle(len(shuffled), func(a, b int) {
		shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
	})

	var (
		teams  []tournamenttypes.Team
		offset int
	)
	for n, size := range PoolGroupSizes(len(shuffled)) {
		name := PoolTeamName
		if n > 0 {
			name = fmt.Sprintf("%s %d", PoolTeamName, n+1)
		}
		teams = append(teams, tournamenttypes.Team{
			ID:      i.newID(),
			Name:    name,
			Members: append([]string(nil), shuffled[offset:offset+size]...),
		})
		offset += size
	}
	return teams
}

// PoolGroupSizes splits n participants into groups of 4, switching to groups
// of 3 when exactly 3 or 6 remain. Counts of the form 4k+1 (5, 9, ...) still
// end with a group of one.
func PoolGroupSizes(n int) []int {
	var sizes []int
	for r := n; r > 0; {
		switch {
		case r == 3 || r == 6:
			sizes = append(sizes, 3)
			r -= 3
		case r <= 4:
			sizes = append(sizes, r)
			r = 0
		default:
			sizes = append(sizes, 4)
			r -= 4
		}
	}
	return sizes
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
