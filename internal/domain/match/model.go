package match

import (
	"fmt"
	"time"
)

// Match is one fixture between two catalog teams.
type Match struct {
	ID      string
	Date    time.Time
	Team1ID string
	Team2ID string
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Team1ID == "" || m.Team2ID == "" {
		return fmt.Errorf("match requires two team ids")
	}
	if m.Team1ID == m.Team2ID {
		return fmt.Errorf("match teams must differ")
	}

	return nil
}

// TeamIDs returns the two participating team ids.
func (m Match) TeamIDs() []string {
	return []string{m.Team1ID, m.Team2ID}
}

// HasTeam reports whether teamID participates in the match.
func (m Match) HasTeam(teamID string) bool {
	return teamID == m.Team1ID || teamID == m.Team2ID
}
