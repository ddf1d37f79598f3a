package player

import "fmt"

// Role represents cricket role categories used in fantasy rules.
type Role string

const (
	RoleBatter     Role = "BAT"
	RoleBowler     Role = "BWL"
	RoleAllRounder Role = "AR"
	RoleKeeper     Role = "WK"
)

var AllRoles = map[Role]struct{}{
	RoleBatter:     {},
	RoleBowler:     {},
	RoleAllRounder: {},
	RoleKeeper:     {},
}

// Player is a selectable athlete from the catalog.
type Player struct {
	ID     string
	Name   string
	Role   Role
	Cost   int64
	TeamID string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	// Zero cost is legitimate catalog data; only negative cost is rejected.
	if p.Cost < 0 {
		return fmt.Errorf("player cost cannot be negative")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}

	return nil
}
