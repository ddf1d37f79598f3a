package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
	"github.com/nplfantasy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/cache"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
)

func seedRosterTotals(t *testing.T, repo *memory.RosterRepository, rows map[string]map[string]float64) {
	t.Helper()
	for userID, byMatch := range rows {
		for matchID, points := range byMatch {
			err := repo.Replace(context.Background(), roster.Roster{
				UserID:        userID,
				Username:      "user " + userID,
				MatchID:       matchID,
				Picks:         []roster.Pick{{PlayerID: "p1"}},
				CaptainID:     "p1",
				ViceCaptainID: "p2",
				TotalPoints:   points,
			})
			if err != nil {
				t.Fatalf("seed roster for %s/%s: %v", userID, matchID, err)
			}
		}
	}
}

func TestRankTotals_OrderAndTiebreak(t *testing.T) {
	calculatedAt := time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC)
	totals := []roster.UserTotal{
		{UserID: "user-c", Points: 50},
		{UserID: "user-a", Points: 80},
		{UserID: "user-d", Points: 50},
		{UserID: "user-b", Points: 95.5},
	}

	entries := rankTotals(leaderboard.ScopeOverall(), totals, calculatedAt)

	wantOrder := []string{"user-b", "user-a", "user-c", "user-d"}
	if len(entries) != len(wantOrder) {
		t.Fatalf("expected %d entries, got %d", len(wantOrder), len(entries))
	}
	for i, userID := range wantOrder {
		if entries[i].UserID != userID {
			t.Fatalf("rank %d: expected %s, got %s", i+1, userID, entries[i].UserID)
		}
		if entries[i].Rank != i+1 {
			t.Fatalf("expected sequential rank %d, got %d", i+1, entries[i].Rank)
		}
		if !entries[i].CalculatedAt.Equal(calculatedAt) {
			t.Fatalf("expected calculated_at %v, got %v", calculatedAt, entries[i].CalculatedAt)
		}
	}
}

func TestLeaderboardService_Refresh_ReplacesScope(t *testing.T) {
	rosters := memory.NewRosterRepository()
	boards := memory.NewLeaderboardRepository()
	matches := memory.NewMatchRepository(memory.SeedMatches())
	service := NewLeaderboardService(rosters, boards, matches, nil, logging.NewNop())

	seedRosterTotals(t, rosters, map[string]map[string]float64{
		"user-1": {memory.MatchIDKathmanduPokhara: 40, memory.MatchIDBiratnagarChitwan: 30},
		"user-2": {memory.MatchIDKathmanduPokhara: 60},
	})

	if err := service.Refresh(context.Background(), leaderboard.ScopeOverall()); err != nil {
		t.Fatalf("refresh overall failed: %v", err)
	}

	entries, err := boards.ListByScope(context.Background(), leaderboard.ScopeOverall(), 10, 0)
	if err != nil {
		t.Fatalf("list overall scope: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "user-1" || entries[0].Points != 70 || entries[0].Rank != 1 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].UserID != "user-2" || entries[1].Points != 60 || entries[1].Rank != 2 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}

	// A second refresh after totals change fully replaces the table.
	seedRosterTotals(t, rosters, map[string]map[string]float64{
		"user-2": {memory.MatchIDBiratnagarChitwan: 25},
	})
	if err := service.Refresh(context.Background(), leaderboard.ScopeOverall()); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}

	entries, err = boards.ListByScope(context.Background(), leaderboard.ScopeOverall(), 10, 0)
	if err != nil {
		t.Fatalf("list overall scope: %v", err)
	}
	if len(entries) != 2 || entries[0].UserID != "user-2" || entries[0].Points != 85 {
		t.Fatalf("expected user-2 promoted to rank 1 with 85 points, got %+v", entries)
	}
}

func TestLeaderboardService_Top_LazyBootstrap(t *testing.T) {
	rosters := memory.NewRosterRepository()
	boards := memory.NewLeaderboardRepository()
	matches := memory.NewMatchRepository(memory.SeedMatches())
	service := NewLeaderboardService(rosters, boards, matches, cache.NewStore(time.Minute), logging.NewNop())

	seedRosterTotals(t, rosters, map[string]map[string]float64{
		"user-1": {memory.MatchIDKathmanduPokhara: 40},
		"user-2": {memory.MatchIDKathmanduPokhara: 60},
		"user-3": {memory.MatchIDBiratnagarChitwan: 10},
	})

	entries, err := service.Top(context.Background(), leaderboard.ScopeMatch(memory.MatchIDKathmanduPokhara), 0, 0)
	if err != nil {
		t.Fatalf("top matchday failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 matchday entries, got %d", len(entries))
	}
	if entries[0].UserID != "user-2" || entries[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", entries[0])
	}

	count, err := boards.CountByScope(context.Background(), leaderboard.ScopeMatch(memory.MatchIDKathmanduPokhara))
	if err != nil || count != 2 {
		t.Fatalf("expected bootstrapped scope with 2 rows, count=%d err=%v", count, err)
	}
}

func TestLeaderboardService_Top_Paging(t *testing.T) {
	rosters := memory.NewRosterRepository()
	boards := memory.NewLeaderboardRepository()
	matches := memory.NewMatchRepository(memory.SeedMatches())
	service := NewLeaderboardService(rosters, boards, matches, nil, logging.NewNop())

	seedRosterTotals(t, rosters, map[string]map[string]float64{
		"user-1": {memory.MatchIDKathmanduPokhara: 40},
		"user-2": {memory.MatchIDKathmanduPokhara: 60},
		"user-3": {memory.MatchIDKathmanduPokhara: 50},
	})

	page, err := service.Top(context.Background(), leaderboard.ScopeOverall(), 2, 1)
	if err != nil {
		t.Fatalf("top with paging failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 entries on page, got %d", len(page))
	}
	if page[0].UserID != "user-3" || page[0].Rank != 2 {
		t.Fatalf("unexpected page start: %+v", page[0])
	}

	if _, err := service.Top(context.Background(), leaderboard.ScopeOverall(), -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative limit, got %v", err)
	}
}

func TestLeaderboardService_Top_UnknownMatch(t *testing.T) {
	rosters := memory.NewRosterRepository()
	boards := memory.NewLeaderboardRepository()
	matches := memory.NewMatchRepository(memory.SeedMatches())
	service := NewLeaderboardService(rosters, boards, matches, nil, logging.NewNop())

	_, err := service.Top(context.Background(), leaderboard.ScopeMatch("npl-2026-m99"), 0, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
