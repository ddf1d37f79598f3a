package roster

import (
	"errors"
	"testing"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
)

func validPicks() []Pick {
	return []Pick{
		{PlayerID: "p1", TeamID: "t1", Role: player.RoleBatter, Cost: 9},
		{PlayerID: "p2", TeamID: "t1", Role: player.RoleBatter, Cost: 9},
		{PlayerID: "p3", TeamID: "t1", Role: player.RoleBowler, Cost: 9},
		{PlayerID: "p4", TeamID: "t1", Role: player.RoleBowler, Cost: 9},
		{PlayerID: "p5", TeamID: "t2", Role: player.RoleKeeper, Cost: 8},
		{PlayerID: "p6", TeamID: "t2", Role: player.RoleAllRounder, Cost: 8},
		{PlayerID: "p7", TeamID: "t2", Role: player.RoleAllRounder, Cost: 8},
	}
}

func TestSelectionValidate(t *testing.T) {
	rules := DefaultRules()
	base := Selection{
		PlayerIDs:     []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"},
		CaptainID:     "p1",
		ViceCaptainID: "p5",
	}

	tests := []struct {
		name      string
		mutate    func(*Selection)
		targetErr error
	}{
		{
			name:      "valid selection",
			mutate:    func(*Selection) {},
			targetErr: nil,
		},
		{
			name: "too few picks",
			mutate: func(s *Selection) {
				s.PlayerIDs = s.PlayerIDs[:6]
			},
			targetErr: ErrWrongRosterSize,
		},
		{
			name: "too many picks",
			mutate: func(s *Selection) {
				s.PlayerIDs = append(s.PlayerIDs, "p8")
			},
			targetErr: ErrWrongRosterSize,
		},
		{
			name: "missing captain",
			mutate: func(s *Selection) {
				s.CaptainID = ""
			},
			targetErr: ErrMissingCaptainRoles,
		},
		{
			name: "missing vice-captain",
			mutate: func(s *Selection) {
				s.ViceCaptainID = ""
			},
			targetErr: ErrMissingCaptainRoles,
		},
		{
			name: "captain equals vice-captain",
			mutate: func(s *Selection) {
				s.ViceCaptainID = s.CaptainID
			},
			targetErr: ErrDuplicateCaptainRoles,
		},
		{
			name: "captain not among picks",
			mutate: func(s *Selection) {
				s.CaptainID = "stranger"
			},
			targetErr: ErrCaptainNotSelected,
		},
		{
			name: "vice-captain not among picks",
			mutate: func(s *Selection) {
				s.ViceCaptainID = "stranger"
			},
			targetErr: ErrCaptainNotSelected,
		},
		{
			name: "size failure wins over missing captain",
			mutate: func(s *Selection) {
				s.PlayerIDs = s.PlayerIDs[:6]
				s.CaptainID = ""
			},
			targetErr: ErrWrongRosterSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := base
			sel.PlayerIDs = append([]string(nil), base.PlayerIDs...)
			tt.mutate(&sel)

			err := sel.Validate(rules)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestValidatePicks(t *testing.T) {
	rules := DefaultRules()
	matchTeams := []string{"t1", "t2"}

	tests := []struct {
		name      string
		mutate    func([]Pick)
		targetErr error
	}{
		{
			name:      "valid picks",
			mutate:    func([]Pick) {},
			targetErr: nil,
		},
		{
			name: "player from a non-competing team",
			mutate: func(picks []Pick) {
				picks[0].TeamID = "t9"
			},
			targetErr: ErrUnknownOrIneligiblePlayer,
		},
		{
			name: "team quota exceeded",
			mutate: func(picks []Pick) {
				picks[4].TeamID = "t1"
			},
			targetErr: ErrTeamQuotaExceeded,
		},
		{
			name: "role quota exceeded",
			mutate: func(picks []Pick) {
				picks[2].Role = player.RoleBatter
				picks[3].Role = player.RoleBatter
			},
			targetErr: ErrRoleQuotaExceeded,
		},
		{
			name: "budget exceeded",
			mutate: func(picks []Pick) {
				picks[0].Cost = 20
			},
			targetErr: ErrBudgetExceeded,
		},
		{
			name: "eligibility failure wins over team quota",
			mutate: func(picks []Pick) {
				picks[4].TeamID = "t1" // 5 from t1
				picks[6].TeamID = "t9" // and one ineligible
			},
			targetErr: ErrUnknownOrIneligiblePlayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picks := validPicks()
			tt.mutate(picks)

			err := ValidatePicks(picks, matchTeams, rules)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestValidatePicks_ShortAfterResolution(t *testing.T) {
	err := ValidatePicks(validPicks()[:6], []string{"t1", "t2"}, DefaultRules())
	if !errors.Is(err, ErrUnknownOrIneligiblePlayer) {
		t.Fatalf("expected ErrUnknownOrIneligiblePlayer, got %v", err)
	}
}

func TestValidatePicks_ZeroCostIsValid(t *testing.T) {
	picks := validPicks()
	for i := range picks {
		picks[i].Cost = 0
	}
	if err := ValidatePicks(picks, []string{"t1", "t2"}, DefaultRules()); err != nil {
		t.Fatalf("zero cost picks should validate, got %v", err)
	}
}
