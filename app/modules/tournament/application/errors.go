package tournamentservice

import (
	"errors"

	resultsservice "github.com/Black-And-White-Club/winter-olympics/app/modules/results/application"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

// Domain errors for the tournament service. Each one refuses the operation
// and leaves the state untouched.
var (
	// ErrNotEnoughTeams indicates an operation needs at least two teams.
	ErrNotEnoughTeams = errors.New("need at least 2 teams")

	// ErrEmptyTeamName indicates a blank team name.
	ErrEmptyTeamName = errors.New("team name cannot be empty")

	// ErrTeamNotFound indicates the team id is unknown.
	ErrTeamNotFound = errors.New("team not found")

	// ErrMatchNotFound indicates the match id is unknown.
	ErrMatchNotFound = errors.New("match not found")

	// ErrInvalidWinner indicates the winner is not one of two distinct sides.
	ErrInvalidWinner = errors.New("winner must be one of the two teams in the match")

	// ErrSameTeamBothSides indicates a team was placed on both sides of a match.
	ErrSameTeamBothSides = errors.New("a team cannot play against itself")

	// ErrInvalidTime indicates a time that is not a non-negative number.
	ErrInvalidTime = errors.New("time must be a non-negative number of seconds")

	// ErrInvalidSide indicates a side other than a or b.
	ErrInvalidSide = errors.New("side must be a or b")

	// ErrNotBracketEvent indicates the slot does not hold matches.
	ErrNotBracketEvent = errors.New("event is not a bracket event")

	// ErrNotTimedEvent indicates the slot does not hold times.
	ErrNotTimedEvent = errors.New("event is not a timed event")

	// ErrEmptySettingKey indicates a blank settings key.
	ErrEmptySettingKey = errors.New("setting key cannot be empty")

	// ErrPersistFailed indicates the new state could not be stored.
	ErrPersistFailed = errors.New("failed to save tournament")
)

// UserMessage turns an operation error into a hint fit for display.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, resultsservice.ErrFormatMismatch):
		return "That file is not a saved results file. Pick a file exported with Save, or use Import teams for a roster."
	case errors.Is(err, tabular.ErrSpreadsheetUnavailable):
		return "Excel files are not available here. Export your sheet as .csv and try again."
	case errors.Is(err, tabular.ErrUnsupportedFileType):
		return "Unsupported file type. Use a .csv or .xlsx file."
	case errors.Is(err, ErrNotEnoughTeams):
		return "Need at least 2 teams. Add or import teams first."
	case errors.Is(err, ErrEmptyTeamName):
		return "Team name cannot be empty."
	case errors.Is(err, ErrTeamNotFound):
		return "That team no longer exists."
	case errors.Is(err, ErrMatchNotFound):
		return "That match no longer exists."
	case errors.Is(err, ErrInvalidWinner):
		return "Pick both teams before choosing a winner, and pick one of them."
	case errors.Is(err, ErrSameTeamBothSides):
		return "A team cannot play against itself."
	case errors.Is(err, ErrInvalidTime):
		return "Enter the time in seconds, for example 12.5 or 12,5."
	case errors.Is(err, ErrPersistFailed):
		return "Your change could not be saved and was not applied. Check the storage settings and try again."
	default:
		return err.Error()
	}
}
