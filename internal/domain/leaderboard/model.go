package leaderboard

import (
	"fmt"
	"time"
)

// Scope is the ranking context: the overall table across all matches, or
// the table for a single match.
type Scope struct {
	MatchID string
}

func ScopeOverall() Scope {
	return Scope{}
}

func ScopeMatch(matchID string) Scope {
	return Scope{MatchID: matchID}
}

func (s Scope) IsOverall() bool {
	return s.MatchID == ""
}

// Key returns a stable identifier usable for per-scope serialization.
func (s Scope) Key() string {
	if s.IsOverall() {
		return "overall"
	}
	return "match:" + s.MatchID
}

func (s Scope) String() string {
	return s.Key()
}

// Entry is one ranked leaderboard row. It is a derived view over roster
// totals, rebuilt by the aggregator rather than authored independently.
type Entry struct {
	UserID       string
	Username     string
	Scope        Scope
	Points       float64
	Rank         int
	CalculatedAt time.Time
}

func (e Entry) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("leaderboard entry user id is required")
	}
	if e.Rank < 0 {
		return fmt.Errorf("leaderboard entry rank cannot be negative")
	}

	return nil
}
