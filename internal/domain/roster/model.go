package roster

import (
	"fmt"
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
)

// Pick is one selected player in a user's roster, resolved from the catalog.
type Pick struct {
	PlayerID      string
	TeamID        string
	Role          player.Role
	Cost          int64
	IsCaptain     bool
	IsViceCaptain bool
}

// Roster is a user's selection for one match. It is keyed by (user, match)
// and replaced wholesale on resubmission, never patched.
type Roster struct {
	UserID        string
	Username      string
	MatchID       string
	Picks         []Pick
	CaptainID     string
	ViceCaptainID string
	TotalPoints   float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r Roster) ValidateBasic() error {
	if r.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if r.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if len(r.Picks) == 0 {
		return fmt.Errorf("roster picks are required")
	}
	if r.CaptainID == "" || r.ViceCaptainID == "" {
		return fmt.Errorf("captain and vice-captain are required")
	}

	return nil
}

// PickIDs returns the selected player ids in pick order.
func (r Roster) PickIDs() []string {
	out := make([]string, 0, len(r.Picks))
	for _, pick := range r.Picks {
		out = append(out, pick.PlayerID)
	}
	return out
}
