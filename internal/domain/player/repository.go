package player

import "context"

// Repository describes player catalog reads needed by use cases.
type Repository interface {
	ListByTeams(ctx context.Context, teamIDs []string) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
}
