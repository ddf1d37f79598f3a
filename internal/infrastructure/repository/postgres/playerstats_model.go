package postgres

import "time"

type playerStatTableModel struct {
	ID        int64      `db:"id"`
	MatchID   string     `db:"match_public_id"`
	PlayerID  string     `db:"player_public_id"`
	Runs      float64    `db:"runs"`
	RunRate   float64    `db:"run_rate"`
	Econ      float64    `db:"econ"`
	Wickets   float64    `db:"wickets"`
	Sixes     float64    `db:"sixes"`
	Fours     float64    `db:"fours"`
	Catches   float64    `db:"catches"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type playerStatInsertModel struct {
	MatchID  string  `db:"match_public_id"`
	PlayerID string  `db:"player_public_id"`
	Runs     float64 `db:"runs"`
	RunRate  float64 `db:"run_rate"`
	Econ     float64 `db:"econ"`
	Wickets  float64 `db:"wickets"`
	Sixes    float64 `db:"sixes"`
	Fours    float64 `db:"fours"`
	Catches  float64 `db:"catches"`
}
