package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	qb "github.com/nplfantasy/fantasy-cricket/internal/platform/querybuilder"
)

// LeaderboardRepository stores ranked snapshots per scope. Entries are
// derived data, so replacing a scope hard deletes the previous table
// instead of soft deleting it.
type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) ListByScope(ctx context.Context, scope leaderboard.Scope, limit, offset int) ([]leaderboard.Entry, error) {
	builder := qb.Select("*").From("leaderboard_entries").
		Where(qb.Eq("scope", scope.Key())).
		OrderBy("rank")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	if offset > 0 {
		builder = builder.Offset(offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leaderboard query: %w", err)
	}

	var rows []leaderboardEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leaderboard entries: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboard.Entry{
			UserID:       row.UserID,
			Username:     row.Username,
			Scope:        scope,
			Points:       row.Points,
			Rank:         row.Rank,
			CalculatedAt: row.CalculatedAt,
		})
	}
	return out, nil
}

func (r *LeaderboardRepository) CountByScope(ctx context.Context, scope leaderboard.Scope) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("leaderboard_entries").
		Where(qb.Eq("scope", scope.Key())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count leaderboard query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count leaderboard entries: %w", err)
	}
	return count, nil
}

func (r *LeaderboardRepository) ReplaceByScope(ctx context.Context, scope leaderboard.Scope, entries []leaderboard.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace leaderboard scope: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const clearQuery = `DELETE FROM leaderboard_entries WHERE scope = $1`
	if _, err := tx.ExecContext(ctx, clearQuery, scope.Key()); err != nil {
		return fmt.Errorf("clear leaderboard scope: %w", err)
	}

	for _, entry := range entries {
		insertModel := leaderboardEntryInsertModel{
			Scope:        scope.Key(),
			UserID:       entry.UserID,
			Username:     entry.Username,
			Points:       entry.Points,
			Rank:         entry.Rank,
			CalculatedAt: entry.CalculatedAt,
		}
		query, args, err := qb.InsertModel("leaderboard_entries", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert leaderboard entry query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert leaderboard entry user=%s: %w", entry.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace leaderboard scope tx: %w", err)
	}
	return nil
}
