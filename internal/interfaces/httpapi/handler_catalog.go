package httpapi

import (
	"net/http"
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/team"
	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
)

type teamDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Acronym string `json:"acronym"`
}

type matchDTO struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
	Team1  teamDTO   `json:"team_1"`
	Team2  teamDTO   `json:"team_2"`
}

type playerDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Cost   int64  `json:"cost"`
	TeamID string `json:"team_id"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.catalogService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchSummaryToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"matches": out})
}

func (h *Handler) ListMatchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPlayers")
	defer span.End()

	matchID := r.PathValue("matchID")
	players, err := h.catalogService.ListEligiblePlayers(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match players failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"players": playersToDTO(players)})
}

func matchSummaryToDTO(m usecase.MatchSummary) matchDTO {
	return matchDTO{
		ID:     m.Match.ID,
		Date:   m.Match.Date,
		Status: m.Status,
		Team1:  teamToDTO(m.Team1),
		Team2:  teamToDTO(m.Team2),
	}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:      t.ID,
		Name:    t.Name,
		Acronym: t.Acronym,
	}
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerDTO{
			ID:     p.ID,
			Name:   p.Name,
			Role:   string(p.Role),
			Cost:   p.Cost,
			TeamID: p.TeamID,
		})
	}
	return out
}
