package postgres

import "time"

type rosterTableModel struct {
	ID            int64      `db:"id"`
	UserID        string     `db:"user_id"`
	Username      string     `db:"username"`
	MatchID       string     `db:"match_public_id"`
	CaptainID     string     `db:"captain_public_id"`
	ViceCaptainID string     `db:"vice_captain_public_id"`
	TotalPoints   float64    `db:"total_points"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type rosterPickTableModel struct {
	ID            int64      `db:"id"`
	UserID        string     `db:"user_id"`
	MatchID       string     `db:"match_public_id"`
	PlayerID      string     `db:"player_public_id"`
	TeamID        string     `db:"team_public_id"`
	Role          string     `db:"role"`
	Cost          int64      `db:"cost"`
	IsCaptain     bool       `db:"is_captain"`
	IsViceCaptain bool       `db:"is_vice_captain"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type rosterInsertModel struct {
	UserID        string    `db:"user_id"`
	Username      string    `db:"username"`
	MatchID       string    `db:"match_public_id"`
	CaptainID     string    `db:"captain_public_id"`
	ViceCaptainID string    `db:"vice_captain_public_id"`
	TotalPoints   float64   `db:"total_points"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type rosterPickInsertModel struct {
	UserID        string `db:"user_id"`
	MatchID       string `db:"match_public_id"`
	PlayerID      string `db:"player_public_id"`
	TeamID        string `db:"team_public_id"`
	Role          string `db:"role"`
	Cost          int64  `db:"cost"`
	IsCaptain     bool   `db:"is_captain"`
	IsViceCaptain bool   `db:"is_vice_captain"`
}
