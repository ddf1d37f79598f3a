package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/match"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/scoring"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/team"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
)

// PlayerResult is one pick's score joined with catalog names for display.
type PlayerResult struct {
	scoring.PlayerScore
	PlayerName string
	TeamID     string
	TeamName   string
}

// RosterResults is the scored breakdown of one user's roster for a match.
type RosterResults struct {
	MatchID     string
	UserID      string
	Username    string
	Players     []PlayerResult
	TotalPoints float64
}

// ScoringService computes roster scores from raw stats and keeps persisted
// totals in line with them.
type ScoringService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	teamRepo   team.Repository
	rosterRepo roster.Repository
	statsRepo  playerstats.Repository
	boards     *LeaderboardService
	logger     *logging.Logger
	now        func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	rosterRepo roster.Repository,
	statsRepo playerstats.Repository,
	boards *LeaderboardService,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		rosterRepo: rosterRepo,
		statsRepo:  statsRepo,
		boards:     boards,
		logger:     logger,
		now:        time.Now,
	}
}

// GetRosterResults scores the caller's roster against the latest stats and
// joins player and team names for display.
func (s *ScoringService) GetRosterResults(ctx context.Context, userID, matchID string) (RosterResults, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetRosterResults")
	defer span.End()

	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" {
		return RosterResults{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	if matchID == "" {
		return RosterResults{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, found, err := s.rosterRepo.GetByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return RosterResults{}, fmt.Errorf("get roster: %w", err)
	}
	if !found {
		return RosterResults{}, fmt.Errorf("%w: roster for match=%s", ErrNotFound, matchID)
	}

	statByPlayer, err := s.statsByPlayer(ctx, matchID)
	if err != nil {
		return RosterResults{}, err
	}

	scores, total := scoring.ScoreRoster(item, statByPlayer)

	players, err := s.playerRepo.GetByIDs(ctx, item.PickIDs())
	if err != nil {
		return RosterResults{}, fmt.Errorf("get players by ids: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	teamIDs := make([]string, 0, 2)
	seenTeams := make(map[string]struct{}, 2)
	for _, p := range players {
		playerByID[p.ID] = p
		if _, ok := seenTeams[p.TeamID]; !ok {
			seenTeams[p.TeamID] = struct{}{}
			teamIDs = append(teamIDs, p.TeamID)
		}
	}

	teams, err := s.teamRepo.GetByIDs(ctx, teamIDs)
	if err != nil {
		return RosterResults{}, fmt.Errorf("get teams by ids: %w", err)
	}
	teamByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	rows := make([]PlayerResult, 0, len(scores))
	for _, score := range scores {
		p := playerByID[score.PlayerID]
		rows = append(rows, PlayerResult{
			PlayerScore: score,
			PlayerName:  p.Name,
			TeamID:      p.TeamID,
			TeamName:    teamByID[p.TeamID].Name,
		})
	}

	return RosterResults{
		MatchID:     matchID,
		UserID:      item.UserID,
		Username:    item.Username,
		Players:     rows,
		TotalPoints: total,
	}, nil
}

// RecalculateMatch rescores every roster of a match from the latest stats,
// persists the totals, and rebuilds the matchday leaderboard. The overall
// scope is left to the caller, which may batch it across matches.
func (s *ScoringService) RecalculateMatch(ctx context.Context, matchID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecalculateMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return 0, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	statByPlayer, err := s.statsByPlayer(ctx, matchID)
	if err != nil {
		return 0, err
	}

	rosters, err := s.rosterRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("list rosters by match: %w", err)
	}

	for _, item := range rosters {
		_, total := scoring.ScoreRoster(item, statByPlayer)
		if err := s.rosterRepo.UpdateTotalPoints(ctx, item.UserID, item.MatchID, total); err != nil {
			return 0, fmt.Errorf("update roster total for user=%s: %w", item.UserID, err)
		}
	}

	if s.boards != nil {
		if err := s.boards.Refresh(ctx, leaderboard.ScopeMatch(matchID)); err != nil {
			return 0, err
		}
	}

	s.logger.InfoContext(ctx, "match rescored",
		"match_id", matchID,
		"roster_count", len(rosters),
	)

	return len(rosters), nil
}

func (s *ScoringService) statsByPlayer(ctx context.Context, matchID string) (map[string]playerstats.Stat, error) {
	stats, err := s.statsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match stats: %w", err)
	}

	statByPlayer := make(map[string]playerstats.Stat, len(stats))
	for _, stat := range stats {
		statByPlayer[stat.PlayerID] = stat
	}
	return statByPlayer, nil
}
