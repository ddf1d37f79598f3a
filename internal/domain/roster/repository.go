package roster

import "context"

// UserTotal is one user's aggregated roster points within some scope.
type UserTotal struct {
	UserID   string
	Username string
	Points   float64
}

// Repository exposes roster persistence operations. Replace must be atomic:
// a concurrent reader sees either the prior roster or the new one, never a
// partial set of picks.
type Repository interface {
	GetByUserAndMatch(ctx context.Context, userID, matchID string) (Roster, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Roster, error)
	Replace(ctx context.Context, item Roster) error
	UpdateTotalPoints(ctx context.Context, userID, matchID string, totalPoints float64) error

	// TotalsOverall sums total points per user across every match.
	TotalsOverall(ctx context.Context) ([]UserTotal, error)
	// TotalsByMatch returns per-user total points for one match.
	TotalsByMatch(ctx context.Context, matchID string) ([]UserTotal, error)
}
