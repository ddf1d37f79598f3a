package httpapi

import (
	"fmt"
	"net/http"

	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
)

type playerResultDTO struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	TeamID        string  `json:"team_id"`
	TeamName      string  `json:"team_name"`
	Role          string  `json:"role"`
	IsCaptain     bool    `json:"is_captain"`
	IsViceCaptain bool    `json:"is_vice_captain"`
	Runs          float64 `json:"runs"`
	RunRate       float64 `json:"run_rate"`
	Econ          float64 `json:"econ"`
	Wickets       float64 `json:"wickets"`
	Sixes         float64 `json:"sixes"`
	Fours         float64 `json:"fours"`
	Catches       float64 `json:"catches"`
	BasePoints    float64 `json:"base_points"`
	Multiplier    float64 `json:"multiplier"`
	FinalPoints   float64 `json:"final_points"`
}

type rosterResultsDTO struct {
	MatchID     string            `json:"match_id"`
	UserID      string            `json:"user_id"`
	Username    string            `json:"username"`
	Players     []playerResultDTO `json:"players"`
	TotalPoints float64           `json:"total_points"`
}

func (h *Handler) GetRosterResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterResults")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID := r.PathValue("matchID")
	results, err := h.scoringService.GetRosterResults(ctx, principal.UserID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster results failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterResultsToDTO(results))
}

func rosterResultsToDTO(results usecase.RosterResults) rosterResultsDTO {
	players := make([]playerResultDTO, 0, len(results.Players))
	for _, row := range results.Players {
		players = append(players, playerResultDTO{
			PlayerID:      row.PlayerID,
			PlayerName:    row.PlayerName,
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Role:          string(row.Role),
			IsCaptain:     row.IsCaptain,
			IsViceCaptain: row.IsViceCaptain,
			Runs:          row.Stat.Runs,
			RunRate:       row.Stat.RunRate,
			Econ:          row.Stat.Econ,
			Wickets:       row.Stat.Wickets,
			Sixes:         row.Stat.Sixes,
			Fours:         row.Stat.Fours,
			Catches:       row.Stat.Catches,
			BasePoints:    row.BasePoints,
			Multiplier:    row.Multiplier,
			FinalPoints:   row.FinalPoints,
		})
	}

	return rosterResultsDTO{
		MatchID:     results.MatchID,
		UserID:      results.UserID,
		Username:    results.Username,
		Players:     players,
		TotalPoints: results.TotalPoints,
	}
}
