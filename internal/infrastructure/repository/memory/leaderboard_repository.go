package memory

import (
	"context"
	"sync"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
)

type LeaderboardRepository struct {
	mu     sync.RWMutex
	scopes map[string][]leaderboard.Entry
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{scopes: make(map[string][]leaderboard.Entry)}
}

func (r *LeaderboardRepository) ListByScope(_ context.Context, scope leaderboard.Scope, limit, offset int) ([]leaderboard.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.scopes[scope.Key()]
	if offset >= len(entries) {
		return []leaderboard.Entry{}, nil
	}

	end := len(entries)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return append([]leaderboard.Entry(nil), entries[offset:end]...), nil
}

func (r *LeaderboardRepository) CountByScope(_ context.Context, scope leaderboard.Scope) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.scopes[scope.Key()]), nil
}

func (r *LeaderboardRepository) ReplaceByScope(_ context.Context, scope leaderboard.Scope, entries []leaderboard.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scopes[scope.Key()] = append([]leaderboard.Entry(nil), entries...)
	return nil
}
