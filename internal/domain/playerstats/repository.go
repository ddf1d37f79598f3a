package playerstats

import "context"

// Repository exposes per-match stat reads and the ingestion write path.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Stat, error)
	Upsert(ctx context.Context, stat Stat) error
}
