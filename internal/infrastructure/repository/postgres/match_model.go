package postgres

import "time"

type matchTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	MatchDate time.Time  `db:"match_date"`
	Team1ID   string     `db:"team1_public_id"`
	Team2ID   string     `db:"team2_public_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
