package scoreservice

import (
	"sort"
	"strings"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

// Standing is one row of the points table.
type Standing struct {
	Rank   int
	Team   tournamenttypes.Team
	Points TeamPoints
}

// Standings returns every team ordered by total points, highest first, with
// ties ordered by name. Teams level on points share a rank.
func Standings(state *tournamenttypes.State) []Standing {
	points := ComputePoints(state)

	out := make([]Standing, 0, len(state.Teams))
	for _, t := range state.Teams {
		out = append(out, Standing{Team: t, Points: points[t.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points.Total != out[j].Points.Total {
			return out[i].Points.Total > out[j].Points.Total
		}
		return strings.ToLower(out[i].Team.Name) < strings.ToLower(out[j].Team.Name)
	})

	for i := range out {
		if i > 0 && out[i].Points.Total == out[i-1].Points.Total {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}
