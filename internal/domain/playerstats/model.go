package playerstats

import "fmt"

// Stat is one player's raw performance record for one match.
// A missing record means the player did not play; scoring treats it as zeros.
type Stat struct {
	MatchID  string
	PlayerID string
	Runs     float64
	RunRate  float64
	Econ     float64
	Wickets  float64
	Sixes    float64
	Fours    float64
	Catches  float64
}

func (s Stat) Validate() error {
	if s.MatchID == "" {
		return fmt.Errorf("stat match id is required")
	}
	if s.PlayerID == "" {
		return fmt.Errorf("stat player id is required")
	}
	for name, value := range map[string]float64{
		"runs":     s.Runs,
		"run_rate": s.RunRate,
		"econ":     s.Econ,
		"wickets":  s.Wickets,
		"sixes":    s.Sixes,
		"fours":    s.Fours,
		"catches":  s.Catches,
	} {
		if value < 0 {
			return fmt.Errorf("stat %s cannot be negative", name)
		}
	}

	return nil
}
