package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/user"
	"github.com/nplfantasy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
)

type fixtureRepos struct {
	matches *memory.MatchRepository
	players *memory.PlayerRepository
	teams   *memory.TeamRepository
	rosters *memory.RosterRepository
	stats   *memory.PlayerStatsRepository
	boards  *memory.LeaderboardRepository
}

func newFixtureRepos() fixtureRepos {
	return fixtureRepos{
		matches: memory.NewMatchRepository(memory.SeedMatches()),
		players: memory.NewPlayerRepository(memory.SeedPlayers()),
		teams:   memory.NewTeamRepository(memory.SeedTeams()),
		rosters: memory.NewRosterRepository(),
		stats:   memory.NewPlayerStatsRepository(nil),
		boards:  memory.NewLeaderboardRepository(),
	}
}

func newRosterService(repos fixtureRepos) *RosterService {
	boards := NewLeaderboardService(repos.rosters, repos.boards, repos.matches, nil, logging.NewNop())
	return NewRosterService(
		repos.matches,
		repos.players,
		repos.rosters,
		repos.stats,
		boards,
		roster.DefaultRules(),
		logging.NewNop(),
	)
}

func validSelection() ([]string, string, string) {
	playerIDs := []string{
		"ktm-bat-02",
		"ktm-bat-03",
		"ktm-bwl-02",
		"ktm-ar-02",
		"pkr-bat-03",
		"pkr-bwl-02",
		"pkr-wk-01",
	}
	return playerIDs, "ktm-bat-02", "pkr-wk-01"
}

func TestRosterService_SubmitRoster_CreateThenReplace(t *testing.T) {
	repos := newFixtureRepos()
	service := newRosterService(repos)

	firstNow := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return firstNow }

	playerIDs, captainID, viceID := validSelection()
	created, err := service.SubmitRoster(context.Background(), SubmitRosterInput{
		Principal:     user.Principal{UserID: "user-1", Username: "ram"},
		MatchID:       memory.MatchIDKathmanduPokhara,
		PlayerIDs:     playerIDs,
		CaptainID:     captainID,
		ViceCaptainID: viceID,
	})
	if err != nil {
		t.Fatalf("submit roster create failed: %v", err)
	}
	if len(created.Picks) != 7 {
		t.Fatalf("expected 7 picks, got %d", len(created.Picks))
	}
	if !created.CreatedAt.Equal(firstNow) || !created.UpdatedAt.Equal(firstNow) {
		t.Fatalf("expected timestamps %v, got created=%v updated=%v", firstNow, created.CreatedAt, created.UpdatedAt)
	}

	secondNow := firstNow.Add(30 * time.Minute)
	service.now = func() time.Time { return secondNow }

	replaced, err := service.SubmitRoster(context.Background(), SubmitRosterInput{
		Principal:     user.Principal{UserID: "user-1", Username: "ram"},
		MatchID:       memory.MatchIDKathmanduPokhara,
		PlayerIDs:     playerIDs,
		CaptainID:     viceID,
		ViceCaptainID: captainID,
	})
	if err != nil {
		t.Fatalf("submit roster replace failed: %v", err)
	}
	if !replaced.CreatedAt.Equal(firstNow) {
		t.Fatalf("expected created_at preserved, got %v", replaced.CreatedAt)
	}
	if !replaced.UpdatedAt.Equal(secondNow) {
		t.Fatalf("expected updated_at %v, got %v", secondNow, replaced.UpdatedAt)
	}
	if replaced.CaptainID != viceID {
		t.Fatalf("expected captain swapped to %s, got %s", viceID, replaced.CaptainID)
	}

	stored, found, err := repos.rosters.GetByUserAndMatch(context.Background(), "user-1", memory.MatchIDKathmanduPokhara)
	if err != nil || !found {
		t.Fatalf("expected stored roster, found=%v err=%v", found, err)
	}
	if stored.CaptainID != viceID {
		t.Fatalf("stored roster captain mismatch: %s", stored.CaptainID)
	}
}

func TestRosterService_SubmitRoster_RefreshesLeaderboards(t *testing.T) {
	repos := newFixtureRepos()
	service := newRosterService(repos)

	playerIDs, captainID, viceID := validSelection()
	_, err := service.SubmitRoster(context.Background(), SubmitRosterInput{
		Principal:     user.Principal{UserID: "user-1", Username: "ram"},
		MatchID:       memory.MatchIDKathmanduPokhara,
		PlayerIDs:     playerIDs,
		CaptainID:     captainID,
		ViceCaptainID: viceID,
	})
	if err != nil {
		t.Fatalf("submit roster failed: %v", err)
	}

	overall, err := repos.boards.ListByScope(context.Background(), leaderboard.ScopeOverall(), 10, 0)
	if err != nil {
		t.Fatalf("list overall scope: %v", err)
	}
	if len(overall) != 1 || overall[0].UserID != "user-1" || overall[0].Rank != 1 {
		t.Fatalf("unexpected overall entries: %+v", overall)
	}

	matchday, err := repos.boards.ListByScope(context.Background(), leaderboard.ScopeMatch(memory.MatchIDKathmanduPokhara), 10, 0)
	if err != nil {
		t.Fatalf("list matchday scope: %v", err)
	}
	if len(matchday) != 1 || matchday[0].Username != "ram" {
		t.Fatalf("unexpected matchday entries: %+v", matchday)
	}
}

func TestRosterService_SubmitRoster_ValidationFailures(t *testing.T) {
	repos := newFixtureRepos()
	service := newRosterService(repos)

	playerIDs, captainID, viceID := validSelection()

	tests := []struct {
		name      string
		mutate    func(*SubmitRosterInput)
		targetErr error
	}{
		{
			name: "unknown match",
			mutate: func(in *SubmitRosterInput) {
				in.MatchID = "npl-2026-m99"
			},
			targetErr: ErrNotFound,
		},
		{
			name: "too few picks",
			mutate: func(in *SubmitRosterInput) {
				in.PlayerIDs = in.PlayerIDs[:6]
			},
			targetErr: roster.ErrWrongRosterSize,
		},
		{
			name: "captain not selected",
			mutate: func(in *SubmitRosterInput) {
				in.CaptainID = "pkr-bat-01"
			},
			targetErr: roster.ErrCaptainNotSelected,
		},
		{
			name: "duplicate pick collapses to ineligible",
			mutate: func(in *SubmitRosterInput) {
				in.PlayerIDs[1] = in.PlayerIDs[0]
				in.CaptainID = in.PlayerIDs[0]
			},
			targetErr: roster.ErrUnknownOrIneligiblePlayer,
		},
		{
			name: "player from non-competing team",
			mutate: func(in *SubmitRosterInput) {
				in.PlayerIDs[1] = "brt-bat-01"
			},
			targetErr: roster.ErrUnknownOrIneligiblePlayer,
		},
		{
			name: "unknown player id",
			mutate: func(in *SubmitRosterInput) {
				in.PlayerIDs[1] = "ktm-bat-99"
			},
			targetErr: roster.ErrUnknownOrIneligiblePlayer,
		},
		{
			name: "team quota exceeded",
			mutate: func(in *SubmitRosterInput) {
				// fifth Kathmandu pick
				in.PlayerIDs[4] = "ktm-wk-01"
			},
			targetErr: roster.ErrTeamQuotaExceeded,
		},
		{
			name: "budget exceeded",
			mutate: func(in *SubmitRosterInput) {
				in.PlayerIDs = []string{
					"ktm-bat-01", "ktm-ar-01", "ktm-bwl-01", "ktm-wk-01",
					"pkr-ar-01", "pkr-bat-01", "pkr-bwl-01",
				}
				in.CaptainID = "ktm-bat-01"
				in.ViceCaptainID = "pkr-bat-01"
			},
			targetErr: roster.ErrBudgetExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := SubmitRosterInput{
				Principal:     user.Principal{UserID: "user-1", Username: "ram"},
				MatchID:       memory.MatchIDKathmanduPokhara,
				PlayerIDs:     append([]string(nil), playerIDs...),
				CaptainID:     captainID,
				ViceCaptainID: viceID,
			}
			tt.mutate(&input)

			_, err := service.SubmitRoster(context.Background(), input)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestRosterService_GetRoster_NotSubmittedYet(t *testing.T) {
	repos := newFixtureRepos()
	service := newRosterService(repos)

	_, found, err := service.GetRoster(context.Background(), "user-1", memory.MatchIDKathmanduPokhara)
	if err != nil {
		t.Fatalf("get roster failed: %v", err)
	}
	if found {
		t.Fatal("expected no roster before first submit")
	}

	_, _, err = service.GetRoster(context.Background(), "user-1", "npl-2026-m99")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
}

func TestRosterService_SubmitRoster_ConcurrentUsers(t *testing.T) {
	repos := newFixtureRepos()
	service := newRosterService(repos)

	playerIDs, captainID, viceID := validSelection()
	users := []string{"user-1", "user-2", "user-3", "user-4", "user-5", "user-6"}

	var wg sync.WaitGroup
	errs := make(chan error, len(users))
	for i, userID := range users {
		// Alternate the captain/vice assignment so a cross-user write
		// would be visible as a wrong captain, not just a wrong count.
		captain, vice := captainID, viceID
		if i%2 == 1 {
			captain, vice = viceID, captainID
		}

		wg.Add(1)
		go func(userID, captain, vice string) {
			defer wg.Done()
			_, err := service.SubmitRoster(context.Background(), SubmitRosterInput{
				Principal:     user.Principal{UserID: userID, Username: "player-" + userID},
				MatchID:       memory.MatchIDKathmanduPokhara,
				PlayerIDs:     append([]string(nil), playerIDs...),
				CaptainID:     captain,
				ViceCaptainID: vice,
			})
			if err != nil {
				errs <- fmt.Errorf("submit for %s: %w", userID, err)
			}
		}(userID, captain, vice)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	for i, userID := range users {
		wantCaptain, wantVice := captainID, viceID
		if i%2 == 1 {
			wantCaptain, wantVice = viceID, captainID
		}

		stored, found, err := repos.rosters.GetByUserAndMatch(context.Background(), userID, memory.MatchIDKathmanduPokhara)
		if err != nil || !found {
			t.Fatalf("expected stored roster for %s, found=%v err=%v", userID, found, err)
		}
		if len(stored.Picks) != 7 {
			t.Fatalf("roster for %s has %d picks, want 7", userID, len(stored.Picks))
		}
		if stored.CaptainID != wantCaptain || stored.ViceCaptainID != wantVice {
			t.Fatalf("roster for %s has captain=%s vice=%s, want captain=%s vice=%s",
				userID, stored.CaptainID, stored.ViceCaptainID, wantCaptain, wantVice)
		}
		if stored.Username != "player-"+userID {
			t.Fatalf("roster for %s carries username %q", userID, stored.Username)
		}
	}
}
