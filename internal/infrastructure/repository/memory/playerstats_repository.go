package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	items map[string]playerstats.Stat
}

func NewPlayerStatsRepository(seed []playerstats.Stat) *PlayerStatsRepository {
	items := make(map[string]playerstats.Stat, len(seed))
	for _, stat := range seed {
		items[statKey(stat.MatchID, stat.PlayerID)] = stat
	}
	return &PlayerStatsRepository{items: items}
}

func (r *PlayerStatsRepository) ListByMatch(_ context.Context, matchID string) ([]playerstats.Stat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.Stat, 0, len(r.items))
	for _, stat := range r.items {
		if stat.MatchID == matchID {
			out = append(out, stat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}

func (r *PlayerStatsRepository) Upsert(_ context.Context, stat playerstats.Stat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[statKey(stat.MatchID, stat.PlayerID)] = stat
	return nil
}

func statKey(matchID, playerID string) string {
	return matchID + "::" + playerID
}
