package postgres

import "time"

type leaderboardEntryTableModel struct {
	ID           int64     `db:"id"`
	Scope        string    `db:"scope"`
	UserID       string    `db:"user_id"`
	Username     string    `db:"username"`
	Points       float64   `db:"points"`
	Rank         int       `db:"rank"`
	CalculatedAt time.Time `db:"calculated_at"`
}

type leaderboardEntryInsertModel struct {
	Scope        string    `db:"scope"`
	UserID       string    `db:"user_id"`
	Username     string    `db:"username"`
	Points       float64   `db:"points"`
	Rank         int       `db:"rank"`
	CalculatedAt time.Time `db:"calculated_at"`
}
