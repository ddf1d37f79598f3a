package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	items map[string]roster.Roster
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{items: make(map[string]roster.Roster)}
}

func (r *RosterRepository) GetByUserAndMatch(_ context.Context, userID, matchID string) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[rosterKey(userID, matchID)]
	if !ok {
		return roster.Roster{}, false, nil
	}

	return cloneRoster(item), true, nil
}

func (r *RosterRepository) ListByMatch(_ context.Context, matchID string) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Roster, 0)
	for _, item := range r.items {
		if item.MatchID == matchID {
			out = append(out, cloneRoster(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}

func (r *RosterRepository) Replace(_ context.Context, item roster.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[rosterKey(item.UserID, item.MatchID)] = cloneRoster(item)
	return nil
}

func (r *RosterRepository) UpdateTotalPoints(_ context.Context, userID, matchID string, totalPoints float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rosterKey(userID, matchID)
	item, ok := r.items[key]
	if !ok {
		return nil
	}
	item.TotalPoints = totalPoints
	r.items[key] = item

	return nil
}

func (r *RosterRepository) TotalsOverall(_ context.Context) ([]roster.UserTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := make(map[string]*roster.UserTotal)
	for _, item := range r.items {
		total, ok := byUser[item.UserID]
		if !ok {
			total = &roster.UserTotal{UserID: item.UserID, Username: item.Username}
			byUser[item.UserID] = total
		}
		total.Points += item.TotalPoints
	}

	return collectTotals(byUser), nil
}

func (r *RosterRepository) TotalsByMatch(_ context.Context, matchID string) ([]roster.UserTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := make(map[string]*roster.UserTotal)
	for _, item := range r.items {
		if item.MatchID != matchID {
			continue
		}
		byUser[item.UserID] = &roster.UserTotal{
			UserID:   item.UserID,
			Username: item.Username,
			Points:   item.TotalPoints,
		}
	}

	return collectTotals(byUser), nil
}

func collectTotals(byUser map[string]*roster.UserTotal) []roster.UserTotal {
	out := make([]roster.UserTotal, 0, len(byUser))
	for _, total := range byUser {
		out = append(out, *total)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func rosterKey(userID, matchID string) string {
	return userID + "::" + matchID
}

func cloneRoster(item roster.Roster) roster.Roster {
	copied := item
	copied.Picks = append([]roster.Pick(nil), item.Picks...)
	return copied
}
