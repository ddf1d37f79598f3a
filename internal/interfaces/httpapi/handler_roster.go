package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
)

type submitRosterRequest struct {
	PlayerIDs     []string `json:"player_ids" validate:"required,dive,required"`
	CaptainID     string   `json:"captain_id" validate:"required"`
	ViceCaptainID string   `json:"vice_captain_id" validate:"required"`
}

type pickDTO struct {
	PlayerID      string `json:"player_id"`
	TeamID        string `json:"team_id"`
	Role          string `json:"role"`
	Cost          int64  `json:"cost"`
	IsCaptain     bool   `json:"is_captain"`
	IsViceCaptain bool   `json:"is_vice_captain"`
}

type rosterDTO struct {
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	MatchID       string    `json:"match_id"`
	Picks         []pickDTO `json:"picks"`
	CaptainID     string    `json:"captain_id"`
	ViceCaptainID string    `json:"vice_captain_id"`
	TotalPoints   float64   `json:"total_points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GetMyRoster returns the eligible player pool and, if the caller already
// submitted for this match, the current roster alongside it.
func (h *Handler) GetMyRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID := r.PathValue("matchID")
	item, found, err := h.rosterService.GetRoster(ctx, principal.UserID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	players, err := h.catalogService.ListEligiblePlayers(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	payload := map[string]any{
		"eligible_players": playersToDTO(players),
	}
	if found {
		payload["roster"] = rosterToDTO(item)
	}

	writeSuccess(ctx, w, http.StatusOK, payload)
}

func (h *Handler) SubmitRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitRosterRequest
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

	matchID := r.PathValue("matchID")
	item, err := h.rosterService.SubmitRoster(ctx, usecase.SubmitRosterInput{
		Principal:     principal,
		MatchID:       matchID,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit roster failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item))
}

func rosterToDTO(item roster.Roster) rosterDTO {
	picks := make([]pickDTO, 0, len(item.Picks))
	for _, pick := range item.Picks {
		picks = append(picks, pickDTO{
			PlayerID:      pick.PlayerID,
			TeamID:        pick.TeamID,
			Role:          string(pick.Role),
			Cost:          pick.Cost,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}

	return rosterDTO{
		UserID:        item.UserID,
		Username:      item.Username,
		MatchID:       item.MatchID,
		Picks:         picks,
		CaptainID:     item.CaptainID,
		ViceCaptainID: item.ViceCaptainID,
		TotalPoints:   item.TotalPoints,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}
