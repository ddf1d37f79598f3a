package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/user"
	"github.com/nplfantasy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
)

func newScoringService(repos fixtureRepos) *ScoringService {
	boards := NewLeaderboardService(repos.rosters, repos.boards, repos.matches, nil, logging.NewNop())
	return NewScoringService(
		repos.matches,
		repos.players,
		repos.teams,
		repos.rosters,
		repos.stats,
		boards,
		logging.NewNop(),
	)
}

func submitFixtureRoster(t *testing.T, repos fixtureRepos, userID string) {
	t.Helper()

	playerIDs, captainID, viceID := validSelection()
	_, err := newRosterService(repos).SubmitRoster(context.Background(), SubmitRosterInput{
		Principal:     user.Principal{UserID: userID, Username: "user " + userID},
		MatchID:       memory.MatchIDKathmanduPokhara,
		PlayerIDs:     playerIDs,
		CaptainID:     captainID,
		ViceCaptainID: viceID,
	})
	if err != nil {
		t.Fatalf("submit fixture roster: %v", err)
	}
}

func referenceStat(matchID, playerID string) playerstats.Stat {
	return playerstats.Stat{
		MatchID:  matchID,
		PlayerID: playerID,
		Runs:     50,
		RunRate:  8,
		Econ:     0,
		Wickets:  2,
		Sixes:    3,
		Fours:    4,
		Catches:  1,
	}
}

func TestScoringService_GetRosterResults(t *testing.T) {
	repos := newFixtureRepos()
	service := newScoringService(repos)
	submitFixtureRoster(t, repos, "user-1")

	// Captain and one plain pick played; the rest score zero.
	for _, playerID := range []string{"ktm-bat-02", "pkr-bwl-02"} {
		if err := repos.stats.Upsert(context.Background(), referenceStat(memory.MatchIDKathmanduPokhara, playerID)); err != nil {
			t.Fatalf("seed stat: %v", err)
		}
	}

	results, err := service.GetRosterResults(context.Background(), "user-1", memory.MatchIDKathmanduPokhara)
	if err != nil {
		t.Fatalf("get roster results failed: %v", err)
	}
	if len(results.Players) != 7 {
		t.Fatalf("expected 7 player rows, got %d", len(results.Players))
	}

	byPlayer := make(map[string]PlayerResult, len(results.Players))
	for _, row := range results.Players {
		byPlayer[row.PlayerID] = row
	}

	captain := byPlayer["ktm-bat-02"]
	if !captain.IsCaptain || math.Abs(captain.FinalPoints-30.16) > 1e-9 {
		t.Fatalf("unexpected captain row: %+v", captain)
	}
	if captain.PlayerName != "Bhim Sharki" || captain.TeamName != "Kathmandu Gurkhas" {
		t.Fatalf("expected catalog names joined, got %+v", captain)
	}

	plain := byPlayer["pkr-bwl-02"]
	if plain.IsCaptain || plain.IsViceCaptain || math.Abs(plain.FinalPoints-15.08) > 1e-9 {
		t.Fatalf("unexpected plain row: %+v", plain)
	}

	benched := byPlayer["ktm-bat-03"]
	if benched.FinalPoints != 0 {
		t.Fatalf("expected zero points without a stat record, got %v", benched.FinalPoints)
	}

	if math.Abs(results.TotalPoints-45.24) > 1e-9 {
		t.Fatalf("expected total 45.24, got %v", results.TotalPoints)
	}
}

func TestScoringService_GetRosterResults_NoRoster(t *testing.T) {
	repos := newFixtureRepos()
	service := newScoringService(repos)

	_, err := service.GetRosterResults(context.Background(), "user-1", memory.MatchIDKathmanduPokhara)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoringService_RecalculateMatch(t *testing.T) {
	repos := newFixtureRepos()
	service := newScoringService(repos)
	submitFixtureRoster(t, repos, "user-1")
	submitFixtureRoster(t, repos, "user-2")

	if err := repos.stats.Upsert(context.Background(), referenceStat(memory.MatchIDKathmanduPokhara, "pkr-wk-01")); err != nil {
		t.Fatalf("seed stat: %v", err)
	}

	count, err := service.RecalculateMatch(context.Background(), memory.MatchIDKathmanduPokhara)
	if err != nil {
		t.Fatalf("recalculate match failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rosters rescored, got %d", count)
	}

	// pkr-wk-01 is the vice-captain in the fixture selection.
	stored, found, err := repos.rosters.GetByUserAndMatch(context.Background(), "user-1", memory.MatchIDKathmanduPokhara)
	if err != nil || !found {
		t.Fatalf("expected stored roster, found=%v err=%v", found, err)
	}
	if math.Abs(stored.TotalPoints-22.62) > 1e-9 {
		t.Fatalf("expected persisted total 22.62, got %v", stored.TotalPoints)
	}
}

func TestScoringService_RecalculateMatch_UnknownMatch(t *testing.T) {
	repos := newFixtureRepos()
	service := newScoringService(repos)

	_, err := service.RecalculateMatch(context.Background(), "npl-2026-m99")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
