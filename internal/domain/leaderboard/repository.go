package leaderboard

import "context"

// Repository exposes leaderboard persistence. ReplaceByScope must swap the
// whole scope atomically so readers always observe a fully ranked table.
type Repository interface {
	ListByScope(ctx context.Context, scope Scope, limit, offset int) ([]Entry, error)
	CountByScope(ctx context.Context, scope Scope) (int, error)
	ReplaceByScope(ctx context.Context, scope Scope, entries []Entry) error
}
