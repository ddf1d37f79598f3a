package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/match"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
)

const (
	defaultRecalcWorkers = 4
	maxRecalcWorkers     = 16

	recalcStatusSuccess = "success"
	recalcStatusFailed  = "failed"
)

type RecalcInput struct {
	// MatchIDs narrows the run; empty means every known match.
	MatchIDs   []string
	MaxWorkers int
}

type RecalcResult struct {
	MatchCount   int               `json:"match_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	WorkerCount  int               `json:"worker_count"`
	Tasks        []RecalcTaskResult `json:"tasks"`
}

type RecalcTaskResult struct {
	MatchID    string `json:"match_id"`
	Status     string `json:"status"`
	Rosters    int    `json:"rosters"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// RecalcService runs the full recalculation job: every match is rescored
// on a bounded worker pool, then the overall leaderboard is rebuilt once.
type RecalcService struct {
	matchRepo      match.Repository
	scoring        *ScoringService
	boards         *LeaderboardService
	defaultWorkers int
	logger         *logging.Logger
}

func NewRecalcService(
	matchRepo match.Repository,
	scoring *ScoringService,
	boards *LeaderboardService,
	defaultWorkers int,
	logger *logging.Logger,
) *RecalcService {
	if defaultWorkers < 1 {
		defaultWorkers = defaultRecalcWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RecalcService{
		matchRepo:      matchRepo,
		scoring:        scoring,
		boards:         boards,
		defaultWorkers: defaultWorkers,
		logger:         logger,
	}
}

func (s *RecalcService) Recalculate(ctx context.Context, input RecalcInput) (RecalcResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalcService.Recalculate")
	defer span.End()

	matchIDs, err := s.resolveMatchIDs(ctx, input.MatchIDs)
	if err != nil {
		return RecalcResult{}, err
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = s.defaultWorkers
	}
	if workerCount > maxRecalcWorkers {
		workerCount = maxRecalcWorkers
	}
	if workerCount > len(matchIDs) && len(matchIDs) > 0 {
		workerCount = len(matchIDs)
	}

	result := RecalcResult{
		MatchCount:  len(matchIDs),
		WorkerCount: workerCount,
	}
	if len(matchIDs) == 0 {
		return result, nil
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalcResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	rows := make(chan RecalcTaskResult, len(matchIDs))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, matchID := range matchIDs {
		matchID := matchID
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecalcTaskResult{MatchID: matchID}

			rosters, runErr := s.scoring.RecalculateMatch(ctx, matchID)
			row.Rosters = rosters
			row.DurationMs = time.Since(start).Milliseconds()
			if runErr != nil {
				row.Status = recalcStatusFailed
				row.Message = runErr.Error()
				failedCount.Add(1)
			} else {
				row.Status = recalcStatusSuccess
				successCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return RecalcResult{}, fmt.Errorf("submit match to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].MatchID < result.Tasks[j].MatchID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	if s.boards != nil {
		if err := s.boards.Refresh(ctx, leaderboard.ScopeOverall()); err != nil {
			return result, err
		}
	}

	s.logger.InfoContext(ctx, "recalculation finished",
		"match_count", result.MatchCount,
		"success_count", result.SuccessCount,
		"failed_count", result.FailedCount,
		"worker_count", result.WorkerCount,
	)

	return result, nil
}

func (s *RecalcService) resolveMatchIDs(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		seen := make(map[string]struct{}, len(requested))
		out := make([]string, 0, len(requested))
		for _, id := range requested {
			if id == "" {
				return nil, fmt.Errorf("%w: match id cannot be empty", ErrInvalidInput)
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		return out, nil
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.ID)
	}
	return out, nil
}
