package memory

import (
	"time"

	"github.com/nplfantasy/fantasy-cricket/internal/domain/match"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/team"
)

const (
	TeamIDKathmandu  = "npl-ktm"
	TeamIDPokhara    = "npl-pkr"
	TeamIDBiratnagar = "npl-brt"
	TeamIDChitwan    = "npl-cwn"

	MatchIDKathmanduPokhara  = "npl-2026-m01"
	MatchIDBiratnagarChitwan = "npl-2026-m02"
	MatchIDKathmanduChitwan  = "npl-2026-m03"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDKathmandu, Name: "Kathmandu Gurkhas", Acronym: "KTM"},
		{ID: TeamIDPokhara, Name: "Pokhara Avengers", Acronym: "PKR"},
		{ID: TeamIDBiratnagar, Name: "Biratnagar Kings", Acronym: "BRT"},
		{ID: TeamIDChitwan, Name: "Chitwan Rhinos", Acronym: "CWN"},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:      MatchIDKathmanduPokhara,
			Date:    time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC),
			Team1ID: TeamIDKathmandu,
			Team2ID: TeamIDPokhara,
		},
		{
			ID:      MatchIDBiratnagarChitwan,
			Date:    time.Date(2026, 8, 22, 14, 0, 0, 0, time.UTC),
			Team1ID: TeamIDBiratnagar,
			Team2ID: TeamIDChitwan,
		},
		{
			ID:      MatchIDKathmanduChitwan,
			Date:    time.Date(2026, 12, 5, 14, 0, 0, 0, time.UTC),
			Team1ID: TeamIDKathmandu,
			Team2ID: TeamIDChitwan,
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "ktm-bat-01", TeamID: TeamIDKathmandu, Name: "Kushal Bhurtel", Role: player.RoleBatter, Cost: 10},
		{ID: "ktm-bat-02", TeamID: TeamIDKathmandu, Name: "Bhim Sharki", Role: player.RoleBatter, Cost: 8},
		{ID: "ktm-bat-03", TeamID: TeamIDKathmandu, Name: "Arjun Saud", Role: player.RoleBatter, Cost: 7},
		{ID: "ktm-bwl-01", TeamID: TeamIDKathmandu, Name: "Sompal Kami", Role: player.RoleBowler, Cost: 9},
		{ID: "ktm-bwl-02", TeamID: TeamIDKathmandu, Name: "Lalit Rajbanshi", Role: player.RoleBowler, Cost: 8},
		{ID: "ktm-ar-01", TeamID: TeamIDKathmandu, Name: "Dipendra Singh Airee", Role: player.RoleAllRounder, Cost: 11},
		{ID: "ktm-ar-02", TeamID: TeamIDKathmandu, Name: "Gulsan Jha", Role: player.RoleAllRounder, Cost: 7},
		{ID: "ktm-wk-01", TeamID: TeamIDKathmandu, Name: "Aasif Sheikh", Role: player.RoleKeeper, Cost: 9},

		{ID: "pkr-bat-01", TeamID: TeamIDPokhara, Name: "Rohit Paudel", Role: player.RoleBatter, Cost: 10},
		{ID: "pkr-bat-02", TeamID: TeamIDPokhara, Name: "Kushal Malla", Role: player.RoleBatter, Cost: 9},
		{ID: "pkr-bat-03", TeamID: TeamIDPokhara, Name: "Sundeep Jora", Role: player.RoleBatter, Cost: 6},
		{ID: "pkr-bwl-01", TeamID: TeamIDPokhara, Name: "Karan KC", Role: player.RoleBowler, Cost: 9},
		{ID: "pkr-bwl-02", TeamID: TeamIDPokhara, Name: "Abinash Bohara", Role: player.RoleBowler, Cost: 7},
		{ID: "pkr-ar-01", TeamID: TeamIDPokhara, Name: "Sandeep Lamichhane", Role: player.RoleAllRounder, Cost: 11},
		{ID: "pkr-ar-02", TeamID: TeamIDPokhara, Name: "Kamal Singh Airee", Role: player.RoleAllRounder, Cost: 6},
		{ID: "pkr-wk-01", TeamID: TeamIDPokhara, Name: "Binod Bhandari", Role: player.RoleKeeper, Cost: 8},

		{ID: "brt-bat-01", TeamID: TeamIDBiratnagar, Name: "Lokesh Bam", Role: player.RoleBatter, Cost: 8},
		{ID: "brt-bwl-01", TeamID: TeamIDBiratnagar, Name: "Pratis GC", Role: player.RoleBowler, Cost: 7},
		{ID: "brt-ar-01", TeamID: TeamIDBiratnagar, Name: "Basir Ahamad", Role: player.RoleAllRounder, Cost: 6},
		{ID: "brt-wk-01", TeamID: TeamIDBiratnagar, Name: "Anil Sah", Role: player.RoleKeeper, Cost: 8},

		{ID: "cwn-bat-01", TeamID: TeamIDChitwan, Name: "Aarif Sheikh", Role: player.RoleBatter, Cost: 8},
		{ID: "cwn-bwl-01", TeamID: TeamIDChitwan, Name: "Shahab Alam", Role: player.RoleBowler, Cost: 7},
		{ID: "cwn-ar-01", TeamID: TeamIDChitwan, Name: "Dev Khanal", Role: player.RoleAllRounder, Cost: 6},
		{ID: "cwn-wk-01", TeamID: TeamIDChitwan, Name: "Rit Gautam", Role: player.RoleKeeper, Cost: 7},
	}
}
