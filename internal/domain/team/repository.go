package team

import "context"

type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
}
