package team

import "fmt"

// Team is a real-world club participating in matches.
type Team struct {
	ID      string
	Name    string
	Acronym string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
