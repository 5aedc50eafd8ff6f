package tournamentservice

import (
	"context"

	rosterservice "github.com/Black-And-White-Club/winter-olympics/app/modules/roster/application"
	scoreservice "github.com/Black-And-White-Club/winter-olympics/app/modules/score/application"
	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

// Service is the single owner of the live tournament state.
type Service interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Reset(ctx context.Context) error

	AddTeam(ctx context.Context, name string, members []string) (tournamenttypes.Team, error)
	RemoveTeam(ctx context.Context, id tournamenttypes.TeamID) error
	RenameTeam(ctx context.Context, id tournamenttypes.TeamID, name string) (tournamenttypes.Team, error)
	SetMembers(ctx context.Context, id tournamenttypes.TeamID, members []string) error

	AddMatch(ctx context.Context, slot tournamenttypes.EventSlot) (tournamenttypes.Match, error)
	RemoveMatch(ctx context.Context, id tournamenttypes.MatchID) error
	SetMatchSide(ctx context.Context, id tournamenttypes.MatchID, side tournamenttypes.Side, teamID tournamenttypes.TeamID) error
	SetWinner(ctx context.Context, id tournamenttypes.MatchID, teamID tournamenttypes.TeamID) error
	GenerateRandomMatchups(ctx context.Context) ([]ByeNotice, error)

	SetTime(ctx context.Context, slot tournamenttypes.EventSlot, teamID tournamenttypes.TeamID, raw string) error
	ClearTimes(ctx context.Context, slot tournamenttypes.EventSlot) error

	SetSetting(ctx context.Context, key, value string) error

	ImportRoster(ctx context.Context, filename string, data []byte) (rosterservice.Result, error)
	ImportResults(ctx context.Context, filename string, data []byte) error
	ExportResults(ctx context.Context, format tabular.Format) (string, []byte, error)

	State() *tournamenttypes.State
	Points() map[tournamenttypes.TeamID]scoreservice.TeamPoints
	Standings() []scoreservice.Standing
}
