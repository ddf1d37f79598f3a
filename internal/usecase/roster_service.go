package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/match"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/scoring"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/user"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
)

// SubmitRosterInput is the incoming payload for create/replace roster.
type SubmitRosterInput struct {
	Principal     user.Principal
	MatchID       string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

type RosterService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	statsRepo  playerstats.Repository
	boards     *LeaderboardService
	rules      roster.Rules
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	statsRepo playerstats.Repository,
	boards *LeaderboardService,
	rules roster.Rules,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		statsRepo:  statsRepo,
		boards:     boards,
		rules:      rules,
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitRoster validates a selection against the match catalog and the
// roster rules, then replaces the caller's roster for that match in one
// write. Resubmitting the same selection is a no-op beyond the timestamp.
func (s *RosterService) SubmitRoster(ctx context.Context, input SubmitRosterInput) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SubmitRoster")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)

	if input.Principal.UserID == "" {
		return roster.Roster{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	if input.MatchID == "" {
		return roster.Roster{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}

	selection := roster.Selection{
		PlayerIDs:     trimIDs(input.PlayerIDs),
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
	}
	if err := selection.Validate(s.rules); err != nil {
		return roster.Roster{}, fmt.Errorf("validate selection: %w", err)
	}

	picks, err := s.resolvePicks(ctx, m, selection)
	if err != nil {
		return roster.Roster{}, err
	}

	total, err := s.scoreAgainstCurrentStats(ctx, m.ID, picks, selection)
	if err != nil {
		return roster.Roster{}, err
	}

	now := s.now().UTC()
	existing, hasExisting, err := s.rosterRepo.GetByUserAndMatch(ctx, input.Principal.UserID, m.ID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get existing roster: %w", err)
	}

	createdAt := now
	if hasExisting {
		createdAt = existing.CreatedAt
	}

	item := roster.Roster{
		UserID:        input.Principal.UserID,
		Username:      input.Principal.Username,
		MatchID:       m.ID,
		Picks:         picks,
		CaptainID:     selection.CaptainID,
		ViceCaptainID: selection.ViceCaptainID,
		TotalPoints:   total,
		CreatedAt:     createdAt,
		UpdatedAt:     now,
	}
	if err := item.ValidateBasic(); err != nil {
		return roster.Roster{}, fmt.Errorf("validate roster: %w", err)
	}

	if err := s.rosterRepo.Replace(ctx, item); err != nil {
		return roster.Roster{}, fmt.Errorf("replace roster: %w", err)
	}

	s.refreshBoards(ctx, m.ID)

	s.logger.InfoContext(ctx, "roster submitted",
		"user_id", item.UserID,
		"match_id", item.MatchID,
		"pick_count", len(item.Picks),
		"total_points", item.TotalPoints,
		"replaced", hasExisting,
	)

	return item, nil
}

// GetRoster returns the caller's roster for a match; the bool reports
// whether one has been submitted yet.
func (s *RosterService) GetRoster(ctx context.Context, userID, matchID string) (roster.Roster, bool, error) {
	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" {
		return roster.Roster{}, false, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	if matchID == "" {
		return roster.Roster{}, false, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return roster.Roster{}, false, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	item, found, err := s.rosterRepo.GetByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("get roster: %w", err)
	}

	return item, found, nil
}

// resolvePicks maps selected ids onto catalog players. Duplicate ids
// collapse here, so a selection with duplicates resolves short and fails
// eligibility before any quota counting.
func (s *RosterService) resolvePicks(ctx context.Context, m match.Match, selection roster.Selection) ([]roster.Pick, error) {
	unique := make([]string, 0, len(selection.PlayerIDs))
	seen := make(map[string]struct{}, len(selection.PlayerIDs))
	for _, id := range selection.PlayerIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	players, err := s.playerRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	picks := make([]roster.Pick, 0, len(unique))
	for _, id := range unique {
		p, ok := playerByID[id]
		if !ok {
			continue
		}
		picks = append(picks, roster.Pick{
			PlayerID:      p.ID,
			TeamID:        p.TeamID,
			Role:          p.Role,
			Cost:          p.Cost,
			IsCaptain:     p.ID == selection.CaptainID,
			IsViceCaptain: p.ID == selection.ViceCaptainID,
		})
	}

	if err := roster.ValidatePicks(picks, m.TeamIDs(), s.rules); err != nil {
		return nil, fmt.Errorf("validate picks: %w", err)
	}

	return picks, nil
}

func (s *RosterService) scoreAgainstCurrentStats(ctx context.Context, matchID string, picks []roster.Pick, selection roster.Selection) (float64, error) {
	stats, err := s.statsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("list match stats: %w", err)
	}
	statByPlayer := make(map[string]playerstats.Stat, len(stats))
	for _, stat := range stats {
		statByPlayer[stat.PlayerID] = stat
	}

	_, total := scoring.ScoreRoster(roster.Roster{
		MatchID:       matchID,
		Picks:         picks,
		CaptainID:     selection.CaptainID,
		ViceCaptainID: selection.ViceCaptainID,
	}, statByPlayer)

	return total, nil
}

// refreshBoards rebuilds both affected scopes. A failed refresh leaves the
// previous consistent snapshot in place and the next read or submit
// rebuilds it, so the submit itself is not rolled back.
func (s *RosterService) refreshBoards(ctx context.Context, matchID string) {
	if s.boards == nil {
		return
	}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		return s.boards.Refresh(ctx, leaderboard.ScopeOverall())
	})
	p.Go(func(ctx context.Context) error {
		return s.boards.Refresh(ctx, leaderboard.ScopeMatch(matchID))
	})
	if err := p.Wait(); err != nil {
		s.logger.WarnContext(ctx, "leaderboard refresh after submit failed",
			"match_id", matchID,
			"error", err,
		)
	}
}

func trimIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}
