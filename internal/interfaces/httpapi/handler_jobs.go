package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
)

type playerStatRow struct {
	PlayerID string  `json:"player_id" validate:"required"`
	Runs     float64 `json:"runs"`
	RunRate  float64 `json:"run_rate"`
	Econ     float64 `json:"econ"`
	Wickets  float64 `json:"wickets"`
	Sixes    float64 `json:"sixes"`
	Fours    float64 `json:"fours"`
	Catches  float64 `json:"catches"`
}

type ingestPlayerStatsRequest struct {
	MatchID string          `json:"match_id" validate:"required"`
	Stats   []playerStatRow `json:"stats" validate:"required,min=1,dive"`
}

type ingestResultDTO struct {
	BatchID        string `json:"batch_id"`
	MatchID        string `json:"match_id"`
	StatCount      int    `json:"stat_count"`
	RosterRescored int    `json:"rosters_rescored"`
}

type recalculateRequest struct {
	MatchIDs   []string `json:"match_ids"`
	MaxWorkers int      `json:"max_workers" validate:"gte=0"`
}

func (h *Handler) IngestPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestPlayerStats")
	defer span.End()

	var req ingestPlayerStatsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stats := make([]playerstats.Stat, 0, len(req.Stats))
	for _, row := range req.Stats {
		stats = append(stats, playerstats.Stat{
			MatchID:  req.MatchID,
			PlayerID: row.PlayerID,
			Runs:     row.Runs,
			RunRate:  row.RunRate,
			Econ:     row.Econ,
			Wickets:  row.Wickets,
			Sixes:    row.Sixes,
			Fours:    row.Fours,
			Catches:  row.Catches,
		})
	}

	result, err := h.ingestionService.IngestPlayerStats(ctx, usecase.IngestPlayerStatsInput{
		MatchID: req.MatchID,
		Stats:   stats,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "ingest player stats failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ingestResultDTO{
		BatchID:        result.BatchID,
		MatchID:        result.MatchID,
		StatCount:      result.StatCount,
		RosterRescored: result.RosterRescored,
	})
}

// Recalculate triggers a full rescore. An empty body is allowed and means
// every known match with default worker settings.
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Recalculate")
	defer span.End()

	var req recalculateRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.recalcService.Recalculate(ctx, usecase.RecalcInput{
		MatchIDs:   req.MatchIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
