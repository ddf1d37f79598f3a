package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
)

func newRecalcService(repos fixtureRepos) *RecalcService {
	boards := NewLeaderboardService(repos.rosters, repos.boards, repos.matches, nil, logging.NewNop())
	scoring := NewScoringService(
		repos.matches,
		repos.players,
		repos.teams,
		repos.rosters,
		repos.stats,
		boards,
		logging.NewNop(),
	)
	return NewRecalcService(repos.matches, scoring, boards, 0, logging.NewNop())
}

func TestRecalcService_Recalculate_AllMatches(t *testing.T) {
	repos := newFixtureRepos()
	service := newRecalcService(repos)
	submitFixtureRoster(t, repos, "user-1")

	if err := repos.stats.Upsert(context.Background(), referenceStat(memory.MatchIDKathmanduPokhara, "ktm-bat-02")); err != nil {
		t.Fatalf("seed stat: %v", err)
	}

	result, err := service.Recalculate(context.Background(), RecalcInput{MaxWorkers: 2})
	if err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if result.MatchCount != 3 || result.SuccessCount != 3 || result.FailedCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.WorkerCount != 2 {
		t.Fatalf("expected 2 workers, got %d", result.WorkerCount)
	}
	if len(result.Tasks) != 3 {
		t.Fatalf("expected 3 task rows, got %d", len(result.Tasks))
	}

	overall, err := repos.boards.ListByScope(context.Background(), leaderboard.ScopeOverall(), 10, 0)
	if err != nil {
		t.Fatalf("list overall scope: %v", err)
	}
	if len(overall) != 1 || math.Abs(overall[0].Points-30.16) > 1e-9 {
		t.Fatalf("expected overall rebuilt from rescored totals, got %+v", overall)
	}
}

func TestRecalcService_Recalculate_UnknownMatchFailsTask(t *testing.T) {
	repos := newFixtureRepos()
	service := newRecalcService(repos)

	result, err := service.Recalculate(context.Background(), RecalcInput{
		MatchIDs: []string{memory.MatchIDKathmanduPokhara, "npl-2026-m99"},
	})
	if err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if result.SuccessCount != 1 || result.FailedCount != 1 {
		t.Fatalf("expected one success and one failure, got %+v", result)
	}
}

func TestRecalcService_Recalculate_EmptyMatchID(t *testing.T) {
	repos := newFixtureRepos()
	service := newRecalcService(repos)

	_, err := service.Recalculate(context.Background(), RecalcInput{MatchIDs: []string{""}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
