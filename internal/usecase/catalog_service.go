package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/match"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/team"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/cache"
)

const (
	MatchStatusUpcoming  = "upcoming"
	MatchStatusCompleted = "completed"
)

// MatchSummary is a match joined with its team records and a status
// derived from the match date.
type MatchSummary struct {
	Match  match.Match
	Status string
	Team1  team.Team
	Team2  team.Team
}

// CatalogService serves the read-only reference data: matches, teams and
// the player pool a roster may draw from.
type CatalogService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	store      *cache.Store
	now        func() time.Time
}

func NewCatalogService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	store *cache.Store,
) *CatalogService {
	return &CatalogService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		store:      store,
		now:        time.Now,
	}
}

func (s *CatalogService) ListMatches(ctx context.Context) ([]MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListMatches")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	now := s.now().UTC()
	out := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		status := MatchStatusCompleted
		if m.Date.After(now) {
			status = MatchStatusUpcoming
		}
		out = append(out, MatchSummary{
			Match:  m,
			Status: status,
			Team1:  teamByID[m.Team1ID],
			Team2:  teamByID[m.Team2ID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Match.Date.Equal(out[j].Match.Date) {
			return out[i].Match.Date.Before(out[j].Match.Date)
		}
		return out[i].Match.ID < out[j].Match.ID
	})

	return out, nil
}

func (s *CatalogService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return m, nil
}

// ListEligiblePlayers returns the pool a roster for this match may pick
// from, i.e. every player of the two competing teams.
func (s *CatalogService) ListEligiblePlayers(ctx context.Context, matchID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListEligiblePlayers")
	defer span.End()

	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	load := func(ctx context.Context) (any, error) {
		players, err := s.playerRepo.ListByTeams(ctx, m.TeamIDs())
		if err != nil {
			return nil, fmt.Errorf("list players by teams: %w", err)
		}

		sort.SliceStable(players, func(i, j int) bool {
			if players[i].TeamID != players[j].TeamID {
				return players[i].TeamID < players[j].TeamID
			}
			return players[i].Name < players[j].Name
		})
		return players, nil
	}

	if s.store == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]player.Player), nil
	}

	value, err := s.store.GetOrLoad(ctx, "players:"+m.ID, load)
	if err != nil {
		return nil, err
	}

	players, ok := value.([]player.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected cached player pool for match %s", m.ID)
	}
	return players, nil
}
