package scoring

import (
	"math"
	"testing"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBasePoints(t *testing.T) {
	tests := []struct {
		name string
		stat playerstats.Stat
		want float64
	}{
		{
			name: "reference innings",
			stat: playerstats.Stat{Runs: 50, RunRate: 8, Econ: 0, Wickets: 2, Sixes: 3, Fours: 4, Catches: 1},
			want: 15.08,
		},
		{
			name: "bowler with economy",
			stat: playerstats.Stat{Econ: 5, Wickets: 3},
			want: 8,
		},
		{
			name: "zero economy contributes nothing",
			stat: playerstats.Stat{Runs: 10, Econ: 0},
			want: 1,
		},
		{
			name: "no record",
			stat: playerstats.Stat{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BasePoints(tt.stat)
			if !almostEqual(got, tt.want) {
				t.Fatalf("base points: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestScoreRoster_Multipliers(t *testing.T) {
	stat := playerstats.Stat{Runs: 50, RunRate: 8, Econ: 0, Wickets: 2, Sixes: 3, Fours: 4, Catches: 1}
	item := roster.Roster{
		MatchID: "m1",
		Picks: []roster.Pick{
			{PlayerID: "cap", Role: player.RoleBatter},
			{PlayerID: "vice", Role: player.RoleBowler},
			{PlayerID: "plain", Role: player.RoleKeeper},
		},
		CaptainID:     "cap",
		ViceCaptainID: "vice",
	}
	statByPlayer := map[string]playerstats.Stat{
		"cap":   stat,
		"vice":  stat,
		"plain": stat,
	}

	scores, total := ScoreRoster(item, statByPlayer)
	if len(scores) != 3 {
		t.Fatalf("expected 3 player scores, got %d", len(scores))
	}

	wantFinal := map[string]float64{
		"cap":   30.16,
		"vice":  22.62,
		"plain": 15.08,
	}
	for _, score := range scores {
		if !almostEqual(score.FinalPoints, wantFinal[score.PlayerID]) {
			t.Fatalf("player %s final points: got=%v want=%v", score.PlayerID, score.FinalPoints, wantFinal[score.PlayerID])
		}
	}
	if !almostEqual(total, 67.86) {
		t.Fatalf("total points: got=%v want=67.86", total)
	}
}

func TestScoreRoster_MissingStatsScoreZero(t *testing.T) {
	item := roster.Roster{
		MatchID: "m1",
		Picks: []roster.Pick{
			{PlayerID: "p1", Role: player.RoleBatter},
			{PlayerID: "p2", Role: player.RoleBowler},
		},
		CaptainID:     "p1",
		ViceCaptainID: "p2",
	}

	scores, total := ScoreRoster(item, map[string]playerstats.Stat{})
	if total != 0 {
		t.Fatalf("expected zero total for missing stats, got %v", total)
	}
	for _, score := range scores {
		if score.FinalPoints != 0 {
			t.Fatalf("player %s expected zero points, got %v", score.PlayerID, score.FinalPoints)
		}
	}
}

func TestScoreRoster_TwoStageRounding(t *testing.T) {
	// Each base is 0.006 -> rounds to 0.01 per player; rounding only at the
	// total (0.012) would give 0.01 instead of 0.02 for two picks.
	item := roster.Roster{
		MatchID: "m1",
		Picks: []roster.Pick{
			{PlayerID: "p1", Role: player.RoleBatter},
			{PlayerID: "p2", Role: player.RoleBatter},
		},
		CaptainID:     "p3",
		ViceCaptainID: "p4",
	}
	statByPlayer := map[string]playerstats.Stat{
		"p1": {Runs: 0.06},
		"p2": {Runs: 0.06},
	}

	_, total := ScoreRoster(item, statByPlayer)
	if !almostEqual(total, 0.02) {
		t.Fatalf("two-stage rounding total: got=%v want=0.02", total)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{15.076, 15.08},
		{15.074, 15.07},
		// 0.125 is exactly representable, so this pins half-away-from-zero.
		{0.125, 0.13},
		{-0.125, -0.13},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); !almostEqual(got, tt.want) {
			t.Fatalf("Round2(%v): got=%v want=%v", tt.in, got, tt.want)
		}
	}
}
