package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/match"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/cache"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/resilience"
)

const (
	defaultLeaderboardLimit = 100
	maxLeaderboardLimit     = 500
)

// LeaderboardService maintains ranked snapshots per scope. Refreshes are
// serialized per scope so concurrent submits never interleave partial
// tables, and reads always hit a fully ranked snapshot.
type LeaderboardService struct {
	rosterRepo roster.Repository
	boardRepo  leaderboard.Repository
	matchRepo  match.Repository
	store      *cache.Store
	logger     *logging.Logger
	now        func() time.Time

	mu              sync.Mutex
	scopeLocks      map[string]*sync.Mutex
	bootstrapFlight resilience.SingleFlight
}

func NewLeaderboardService(
	rosterRepo roster.Repository,
	boardRepo leaderboard.Repository,
	matchRepo match.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		rosterRepo: rosterRepo,
		boardRepo:  boardRepo,
		matchRepo:  matchRepo,
		store:      store,
		logger:     logger,
		now:        time.Now,
		scopeLocks: make(map[string]*sync.Mutex),
	}
}

// Refresh recomputes one scope from roster totals and swaps the ranked
// table in atomically.
func (s *LeaderboardService) Refresh(ctx context.Context, scope leaderboard.Scope) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Refresh")
	defer span.End()

	lock := s.scopeLock(scope)
	lock.Lock()
	defer lock.Unlock()

	totals, err := s.totalsForScope(ctx, scope)
	if err != nil {
		return err
	}

	entries := rankTotals(scope, totals, s.now().UTC())
	if err := s.boardRepo.ReplaceByScope(ctx, scope, entries); err != nil {
		return fmt.Errorf("replace leaderboard scope %s: %w", scope, err)
	}

	if s.store != nil {
		s.store.DeletePrefix(ctx, cacheKeyPrefix(scope))
	}

	s.logger.InfoContext(ctx, "leaderboard refreshed",
		"scope", scope.Key(),
		"entry_count", len(entries),
	)

	return nil
}

// Top returns one page of a scope. An empty scope is bootstrapped from
// roster totals first, so cold reads after a restart heal themselves.
func (s *LeaderboardService) Top(ctx context.Context, scope leaderboard.Scope, limit, offset int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Top")
	defer span.End()

	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	if limit == 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	if !scope.IsOverall() {
		_, exists, err := s.matchRepo.GetByID(ctx, scope.MatchID)
		if err != nil {
			return nil, fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: match=%s", ErrNotFound, scope.MatchID)
		}
	}

	if err := s.ensureScope(ctx, scope); err != nil {
		return nil, err
	}

	load := func(ctx context.Context) (any, error) {
		entries, err := s.boardRepo.ListByScope(ctx, scope, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list leaderboard scope %s: %w", scope, err)
		}
		return entries, nil
	}

	if s.store == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]leaderboard.Entry), nil
	}

	key := cacheKeyPrefix(scope) + strconv.Itoa(limit) + ":" + strconv.Itoa(offset)
	value, err := s.store.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}

	entries, ok := value.([]leaderboard.Entry)
	if !ok {
		return nil, fmt.Errorf("unexpected cached leaderboard value for key %s", key)
	}
	return entries, nil
}

func (s *LeaderboardService) ensureScope(ctx context.Context, scope leaderboard.Scope) error {
	count, err := s.boardRepo.CountByScope(ctx, scope)
	if err != nil {
		return fmt.Errorf("count leaderboard scope %s: %w", scope, err)
	}
	if count > 0 {
		return nil
	}

	_, err, _ = s.bootstrapFlight.Do("bootstrap:"+scope.Key(), func() (any, error) {
		return nil, s.Refresh(ctx, scope)
	})
	return err
}

func (s *LeaderboardService) totalsForScope(ctx context.Context, scope leaderboard.Scope) ([]roster.UserTotal, error) {
	if scope.IsOverall() {
		totals, err := s.rosterRepo.TotalsOverall(ctx)
		if err != nil {
			return nil, fmt.Errorf("aggregate overall totals: %w", err)
		}
		return totals, nil
	}

	totals, err := s.rosterRepo.TotalsByMatch(ctx, scope.MatchID)
	if err != nil {
		return nil, fmt.Errorf("aggregate match totals: %w", err)
	}
	return totals, nil
}

func (s *LeaderboardService) scopeLock(scope leaderboard.Scope) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scope.Key()
	lock, ok := s.scopeLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.scopeLocks[key] = lock
	}
	return lock
}

// rankTotals orders users by points descending and assigns sequential
// ranks 1..N. Ties break on user ID ascending so reruns over the same
// totals always produce the same table.
func rankTotals(scope leaderboard.Scope, totals []roster.UserTotal, calculatedAt time.Time) []leaderboard.Entry {
	sorted := append([]roster.UserTotal(nil), totals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	entries := make([]leaderboard.Entry, 0, len(sorted))
	for i, total := range sorted {
		entries = append(entries, leaderboard.Entry{
			UserID:       total.UserID,
			Username:     total.Username,
			Scope:        scope,
			Points:       total.Points,
			Rank:         i + 1,
			CalculatedAt: calculatedAt,
		})
	}
	return entries
}

func cacheKeyPrefix(scope leaderboard.Scope) string {
	return "lb:" + strings.ReplaceAll(scope.Key(), ":", "-") + ":"
}
