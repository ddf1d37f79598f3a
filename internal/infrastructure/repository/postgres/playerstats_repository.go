package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
	qb "github.com/nplfantasy/fantasy-cricket/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) ListByMatch(ctx context.Context, matchID string) ([]playerstats.Stat, error) {
	query, args, err := qb.Select("*").From("player_stats").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match stats query: %w", err)
	}

	var rows []playerStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match stats: %w", err)
	}

	out := make([]playerstats.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.Stat{
			MatchID:  row.MatchID,
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
	return out, nil
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, stat playerstats.Stat) error {
	insertModel := playerStatInsertModel{
		MatchID:  stat.MatchID,
		PlayerID: stat.PlayerID,
		Runs:     stat.Runs,
		RunRate:  stat.RunRate,
		Econ:     stat.Econ,
		Wickets:  stat.Wickets,
		Sixes:    stat.Sixes,
		Fours:    stat.Fours,
		Catches:  stat.Catches,
	}

	query, args, err := qb.InsertModel("player_stats", insertModel, `ON CONFLICT (match_public_id, player_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    runs = EXCLUDED.runs,
    run_rate = EXCLUDED.run_rate,
    econ = EXCLUDED.econ,
    wickets = EXCLUDED.wickets,
    sixes = EXCLUDED.sixes,
    fours = EXCLUDED.fours,
    catches = EXCLUDED.catches,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert player stat query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player stat player=%s: %w", stat.PlayerID, err)
	}
	return nil
}
