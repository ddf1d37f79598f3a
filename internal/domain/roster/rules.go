package roster

import (
	"errors"
	"fmt"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
)

var (
	ErrWrongRosterSize           = errors.New("wrong roster size")
	ErrMissingCaptainRoles       = errors.New("captain and vice-captain are required")
	ErrDuplicateCaptainRoles     = errors.New("captain and vice-captain must differ")
	ErrCaptainNotSelected        = errors.New("captain and vice-captain must be selected players")
	ErrUnknownOrIneligiblePlayer = errors.New("unknown or ineligible player")
	ErrTeamQuotaExceeded         = errors.New("max players from same team exceeded")
	ErrRoleQuotaExceeded         = errors.New("max players with same role exceeded")
	ErrBudgetExceeded            = errors.New("budget cap exceeded")
)

// Rules stores roster validation parameters.
type Rules struct {
	RosterSize int
	MaxPerTeam int
	MaxPerRole int
	BudgetCap  int64
}

func DefaultRules() Rules {
	return Rules{
		RosterSize: 7,
		MaxPerTeam: 4,
		MaxPerRole: 3,
		BudgetCap:  60,
	}
}

// Selection is a raw submission before picks are resolved against the catalog.
type Selection struct {
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

// Validate runs the pre-resolution checks in their fixed order. Each
// constraint has its own sentinel so callers can report the exact reason;
// the first violated constraint wins.
func (s Selection) Validate(rules Rules) error {
	if len(s.PlayerIDs) != rules.RosterSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrWrongRosterSize, rules.RosterSize, len(s.PlayerIDs))
	}
	if s.CaptainID == "" || s.ViceCaptainID == "" {
		return ErrMissingCaptainRoles
	}
	if s.CaptainID == s.ViceCaptainID {
		return ErrDuplicateCaptainRoles
	}

	selected := make(map[string]struct{}, len(s.PlayerIDs))
	for _, id := range s.PlayerIDs {
		selected[id] = struct{}{}
	}
	if _, ok := selected[s.CaptainID]; !ok {
		return fmt.Errorf("%w: captain %s", ErrCaptainNotSelected, s.CaptainID)
	}
	if _, ok := selected[s.ViceCaptainID]; !ok {
		return fmt.Errorf("%w: vice-captain %s", ErrCaptainNotSelected, s.ViceCaptainID)
	}

	return nil
}

// ValidatePicks runs the post-resolution checks: eligibility against the
// match's two teams, then the team quota, role quota, and budget cap.
// A duplicated player id collapses during catalog resolution, so duplicates
// surface here as ErrUnknownOrIneligiblePlayer before any quota counting.
func ValidatePicks(picks []Pick, matchTeamIDs []string, rules Rules) error {
	if len(picks) != rules.RosterSize {
		return fmt.Errorf("%w: resolved %d of %d picks", ErrUnknownOrIneligiblePlayer, len(picks), rules.RosterSize)
	}

	eligibleTeams := make(map[string]struct{}, len(matchTeamIDs))
	for _, id := range matchTeamIDs {
		eligibleTeams[id] = struct{}{}
	}

	teamCounter := make(map[string]int)
	roleCounter := make(map[player.Role]int)
	var totalCost int64

	for _, pick := range picks {
		if pick.PlayerID == "" {
			return fmt.Errorf("%w: empty player id", ErrUnknownOrIneligiblePlayer)
		}
		if _, ok := eligibleTeams[pick.TeamID]; !ok {
			return fmt.Errorf("%w: player %s is not on a competing team", ErrUnknownOrIneligiblePlayer, pick.PlayerID)
		}
		teamCounter[pick.TeamID]++
		roleCounter[pick.Role]++
		totalCost += pick.Cost
	}

	for teamID, count := range teamCounter {
		if count > rules.MaxPerTeam {
			return fmt.Errorf("%w: team=%s max=%d got=%d", ErrTeamQuotaExceeded, teamID, rules.MaxPerTeam, count)
		}
	}
	for role, count := range roleCounter {
		if count > rules.MaxPerRole {
			return fmt.Errorf("%w: role=%s max=%d got=%d", ErrRoleQuotaExceeded, role, rules.MaxPerRole, count)
		}
	}
	if totalCost > rules.BudgetCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrBudgetExceeded, rules.BudgetCap, totalCost)
	}

	return nil
}
