package tournamenttypes

// MatchID is an opaque match identifier, unique across all events.
type MatchID string

// Side selects one half of a match.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// Match is a head-to-head pairing. An empty TeamID means the slot is unset.
type Match struct {
	ID           MatchID
	ATeamID      TeamID
	BTeamID      TeamID
	WinnerTeamID TeamID
}

// HasBothSides reports whether both sides are set.
func (m Match) HasBothSides() bool {
	return m.ATeamID != "" && m.BTeamID != ""
}

// Involves reports whether the team plays on either side.
func (m Match) Involves(id TeamID) bool {
	return id != "" && (m.ATeamID == id || m.BTeamID == id)
}

// Decided reports whether the match counts toward scoring.
func (m Match) Decided() bool {
	return m.HasBothSides() && m.WinnerTeamID != ""
}

// CanWin reports whether id may be recorded as the winner of m.
func (m Match) CanWin(id TeamID) bool {
	if id == "" || m.ATeamID == m.BTeamID {
		return false
	}
	return m.ATeamID == id || m.BTeamID == id
}

// NormalizeWinner clears the winner when it is no longer one of two distinct sides.
func (m *Match) NormalizeWinner() {
	if m.WinnerTeamID != "" && !m.CanWin(m.WinnerTeamID) {
		m.WinnerTeamID = ""
	}
}
