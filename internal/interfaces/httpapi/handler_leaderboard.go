package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
)

type leaderboardEntryDTO struct {
	Rank         int       `json:"rank"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Points       float64   `json:"points"`
	CalculatedAt time.Time `json:"calculated_at"`
}

func (h *Handler) GetOverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverallLeaderboard")
	defer span.End()

	h.serveLeaderboard(w, r.WithContext(ctx), leaderboard.ScopeOverall())
}

func (h *Handler) GetMatchLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchLeaderboard")
	defer span.End()

	h.serveLeaderboard(w, r.WithContext(ctx), leaderboard.ScopeMatch(r.PathValue("matchID")))
}

func (h *Handler) serveLeaderboard(w http.ResponseWriter, r *http.Request, scope leaderboard.Scope) {
	ctx := r.Context()

	limit, err := parsePageParam(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, err := parsePageParam(r, "offset")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboardService.Top(ctx, scope, limit, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "scope", scope.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, leaderboardEntryDTO{
			Rank:         entry.Rank,
			UserID:       entry.UserID,
			Username:     entry.Username,
			Points:       entry.Points,
			CalculatedAt: entry.CalculatedAt,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"scope":   scope.Key(),
		"entries": out,
	})
}

// parsePageParam reads a non-negative integer query parameter, treating an
// absent one as zero so the service can apply its defaults.
func parsePageParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
