package scoring

import (
	"math"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
)

const (
	CaptainMultiplier     = 2.0
	ViceCaptainMultiplier = 1.5
)

// PlayerScore is one pick's scoring breakdown for a match.
type PlayerScore struct {
	PlayerID      string
	Role          player.Role
	IsCaptain     bool
	IsViceCaptain bool
	Stat          playerstats.Stat
	BasePoints    float64
	Multiplier    float64
	FinalPoints   float64
}

// BasePoints converts one raw stat record into a player's base score.
// A player without a record simply scores zero.
func BasePoints(stat playerstats.Stat) float64 {
	points := stat.Runs/10 + stat.RunRate/100
	if stat.Econ > 0 {
		points += 10 / stat.Econ
	}
	points += stat.Wickets * 2
	points += stat.Sixes
	points += stat.Fours * 0.5
	points += stat.Catches

	return points
}

// ScoreRoster computes every pick's final points and the roster total.
// Final points are rounded per player, then summed, then the total is
// rounded again; collapsing the two roundings into one would drift on
// edge cases, so the order is fixed.
func ScoreRoster(item roster.Roster, statByPlayer map[string]playerstats.Stat) ([]PlayerScore, float64) {
	out := make([]PlayerScore, 0, len(item.Picks))
	total := 0.0

	for _, pick := range item.Picks {
		stat := statByPlayer[pick.PlayerID]
		stat.PlayerID = pick.PlayerID
		stat.MatchID = item.MatchID

		multiplier := 1.0
		switch pick.PlayerID {
		case item.CaptainID:
			multiplier = CaptainMultiplier
		case item.ViceCaptainID:
			multiplier = ViceCaptainMultiplier
		}

		base := BasePoints(stat)
		final := Round2(base * multiplier)
		total += final

		out = append(out, PlayerScore{
			PlayerID:      pick.PlayerID,
			Role:          pick.Role,
			IsCaptain:     pick.PlayerID == item.CaptainID,
			IsViceCaptain: pick.PlayerID == item.ViceCaptainID,
			Stat:          stat,
			BasePoints:    base,
			Multiplier:    multiplier,
			FinalPoints:   final,
		})
	}

	return out, Round2(total)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
