package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/match"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
	idgen "github.com/nplfantasy/fantasy-cricket/internal/platform/id"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
)

// IngestPlayerStatsInput carries one batch of raw performance rows for a
// single match.
type IngestPlayerStatsInput struct {
	MatchID string
	Stats   []playerstats.Stat
}

type IngestResult struct {
	BatchID        string
	MatchID        string
	StatCount      int
	RosterRescored int
}

// IngestionService accepts raw stat feeds and fans the effects out:
// stats are upserted, every roster of the match is rescored, and both
// leaderboard scopes are rebuilt.
type IngestionService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	statsRepo  playerstats.Repository
	scoring    *ScoringService
	boards     *LeaderboardService
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewIngestionService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	statsRepo playerstats.Repository,
	scoring *ScoringService,
	boards *LeaderboardService,
	idGen idgen.Generator,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestionService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		scoring:    scoring,
		boards:     boards,
		idGen:      idGen,
		logger:     logger,
	}
}

func (s *IngestionService) IngestPlayerStats(ctx context.Context, input IngestPlayerStatsInput) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestPlayerStats")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.MatchID == "" {
		return IngestResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if len(input.Stats) == 0 {
		return IngestResult{}, fmt.Errorf("%w: stats are required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return IngestResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}

	stats, err := s.normalizeStats(ctx, m, input.Stats)
	if err != nil {
		return IngestResult{}, err
	}

	batchID, err := s.idGen.NewID()
	if err != nil {
		return IngestResult{}, fmt.Errorf("generate batch id: %w", err)
	}

	for _, stat := range stats {
		if err := s.statsRepo.Upsert(ctx, stat); err != nil {
			return IngestResult{}, fmt.Errorf("upsert stat for player=%s: %w", stat.PlayerID, err)
		}
	}

	rescored, err := s.scoring.RecalculateMatch(ctx, m.ID)
	if err != nil {
		return IngestResult{}, err
	}

	if s.boards != nil {
		if err := s.boards.Refresh(ctx, leaderboard.ScopeOverall()); err != nil {
			return IngestResult{}, err
		}
	}

	s.logger.InfoContext(ctx, "player stats ingested",
		"batch_id", batchID,
		"match_id", m.ID,
		"stat_count", len(stats),
		"roster_count", rescored,
	)

	return IngestResult{
		BatchID:        batchID,
		MatchID:        m.ID,
		StatCount:      len(stats),
		RosterRescored: rescored,
	}, nil
}

// normalizeStats pins every row to the batch's match, validates it, and
// rejects players that are not on either competing team.
func (s *IngestionService) normalizeStats(ctx context.Context, m match.Match, raw []playerstats.Stat) ([]playerstats.Stat, error) {
	playerIDs := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, stat := range raw {
		id := strings.TrimSpace(stat.PlayerID)
		if id == "" {
			return nil, fmt.Errorf("%w: stat player id is required", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate stat for player=%s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		playerIDs = append(playerIDs, id)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	out := make([]playerstats.Stat, 0, len(raw))
	for i, stat := range raw {
		stat.PlayerID = playerIDs[i]
		stat.MatchID = m.ID

		p, ok := playerByID[stat.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown player=%s", ErrInvalidInput, stat.PlayerID)
		}
		if !m.HasTeam(p.TeamID) {
			return nil, fmt.Errorf("%w: player=%s is not on a competing team", ErrInvalidInput, stat.PlayerID)
		}
		if err := stat.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		out = append(out, stat)
	}

	return out, nil
}
