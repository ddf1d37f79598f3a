package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
	qb "github.com/nplfantasy/fantasy-cricket/internal/platform/querybuilder"
	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByUserAndMatch(ctx context.Context, userID, matchID string) (roster.Roster, bool, error) {
	query, args, err := qb.Select("*").From("rosters").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("build get roster query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Roster{}, false, nil
		}
		return roster.Roster{}, false, fmt.Errorf("get roster: %w", err)
	}

	picksQuery, picksArgs, err := qb.Select("*").From("roster_picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("build list roster picks query: %w", err)
	}

	var pickRows []rosterPickTableModel
	if err := r.db.SelectContext(ctx, &pickRows, picksQuery, picksArgs...); err != nil {
		return roster.Roster{}, false, fmt.Errorf("list roster picks: %w", err)
	}

	return rosterFromRows(row, pickRows), true, nil
}

func (r *RosterRepository) ListByMatch(ctx context.Context, matchID string) ([]roster.Roster, error) {
	query, args, err := qb.Select("*").From("rosters").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rosters by match query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rosters by match: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	picksQuery, picksArgs, err := qb.Select("*").From("roster_picks").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("user_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match picks query: %w", err)
	}

	var pickRows []rosterPickTableModel
	if err := r.db.SelectContext(ctx, &pickRows, picksQuery, picksArgs...); err != nil {
		return nil, fmt.Errorf("list match picks: %w", err)
	}

	picksByUser := make(map[string][]rosterPickTableModel, len(rows))
	for _, pick := range pickRows {
		picksByUser[pick.UserID] = append(picksByUser[pick.UserID], pick)
	}

	out := make([]roster.Roster, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterFromRows(row, picksByUser[row.UserID]))
	}
	return out, nil
}

// Replace swaps the caller's roster for a match in one transaction: the
// roster row is upserted, old picks are soft deleted, and the new picks
// are inserted. Readers outside the transaction never see a partial set.
func (r *RosterRepository) Replace(ctx context.Context, item roster.Roster) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for roster replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertModel := rosterInsertModel{
		UserID:        item.UserID,
		Username:      item.Username,
		MatchID:       item.MatchID,
		CaptainID:     item.CaptainID,
		ViceCaptainID: item.ViceCaptainID,
		TotalPoints:   item.TotalPoints,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	upsertQuery, upsertArgs, err := qb.InsertModel("rosters", insertModel, `ON CONFLICT (user_id, match_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    username = EXCLUDED.username,
    captain_public_id = EXCLUDED.captain_public_id,
    vice_captain_public_id = EXCLUDED.vice_captain_public_id,
    total_points = EXCLUDED.total_points,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert roster query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		return fmt.Errorf("upsert roster: %w", err)
	}

	clearQuery, clearArgs, err := qb.Update("roster_picks").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("user_id", item.UserID),
			qb.Eq("match_public_id", item.MatchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear roster picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("soft delete existing roster picks: %w", err)
	}

	for _, pick := range item.Picks {
		pickModel := rosterPickInsertModel{
			UserID:        item.UserID,
			MatchID:       item.MatchID,
			PlayerID:      pick.PlayerID,
			TeamID:        pick.TeamID,
			Role:          string(pick.Role),
			Cost:          pick.Cost,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		}
		pickQuery, pickArgs, err := qb.InsertModel("roster_picks", pickModel, `ON CONFLICT (user_id, match_public_id, player_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    role = EXCLUDED.role,
    cost = EXCLUDED.cost,
    is_captain = EXCLUDED.is_captain,
    is_vice_captain = EXCLUDED.is_vice_captain,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert roster pick player=%s query: %w", pick.PlayerID, err)
		}
		if _, err := tx.ExecContext(ctx, pickQuery, pickArgs...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: concurrent roster update for user=%s match=%s", usecase.ErrConflict, item.UserID, item.MatchID)
			}
			return fmt.Errorf("upsert roster pick player=%s: %w", pick.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster replace tx: %w", err)
	}
	return nil
}

func (r *RosterRepository) UpdateTotalPoints(ctx context.Context, userID, matchID string, totalPoints float64) error {
	query, args, err := qb.Update("rosters").
		Set("total_points", totalPoints).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update roster total query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update roster total: %w", err)
	}
	return nil
}

func (r *RosterRepository) TotalsOverall(ctx context.Context) ([]roster.UserTotal, error) {
	query, args, err := qb.Select(
		"user_id",
		"MAX(username) AS username",
		"SUM(total_points) AS points",
	).From("rosters").
		Where(qb.IsNull("deleted_at")).
		GroupBy("user_id").
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build overall totals query: %w", err)
	}

	return r.selectTotals(ctx, query, args)
}

func (r *RosterRepository) TotalsByMatch(ctx context.Context, matchID string) ([]roster.UserTotal, error) {
	query, args, err := qb.Select(
		"user_id",
		"MAX(username) AS username",
		"SUM(total_points) AS points",
	).From("rosters").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		GroupBy("user_id").
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build match totals query: %w", err)
	}

	return r.selectTotals(ctx, query, args)
}

func (r *RosterRepository) selectTotals(ctx context.Context, query string, args []any) ([]roster.UserTotal, error) {
	var rows []struct {
		UserID   string  `db:"user_id"`
		Username string  `db:"username"`
		Points   float64 `db:"points"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("aggregate roster totals: %w", err)
	}

	out := make([]roster.UserTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.UserTotal{
			UserID:   row.UserID,
			Username: row.Username,
			Points:   row.Points,
		})
	}
	return out, nil
}

func rosterFromRows(row rosterTableModel, pickRows []rosterPickTableModel) roster.Roster {
	picks := make([]roster.Pick, 0, len(pickRows))
	for _, pick := range pickRows {
		picks = append(picks, roster.Pick{
			PlayerID:      pick.PlayerID,
			TeamID:        pick.TeamID,
			Role:          player.Role(pick.Role),
			Cost:          pick.Cost,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}

	return roster.Roster{
		UserID:        row.UserID,
		Username:      row.Username,
		MatchID:       row.MatchID,
		Picks:         picks,
		CaptainID:     row.CaptainID,
		ViceCaptainID: row.ViceCaptainID,
		TotalPoints:   row.TotalPoints,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
