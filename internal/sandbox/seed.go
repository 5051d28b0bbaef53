package sandbox

import (
	"time"

	"github.com/ogsmod/modtool/internal/api"
	"github.com/ogsmod/modtool/internal/moderation"
)

// LockedGameID is seeded as a game that can never be annulled.
const LockedGameID int64 = 1003

// Seed fills the store with a handful of games and incidents. Game LockedGameID is locked.
func Seed(store *Store) {
	players := []moderation.Player{
		{ID: 101, Username: "kuroishi"},
		{ID: 102, Username: "shiroishi"},
		{ID: 103, Username: "komi"},
		{ID: 104, Username: "tengen"},
	}

	games := []api.GameDetail{
		{ID: 1001, Name: "Friendly Match", Players: moderation.Players{Black: players[0], White: players[1]}},
		{ID: 1002, Name: "Ranked 19x19", Players: moderation.Players{Black: players[2], White: players[3]}},
		{ID: LockedGameID, Name: "Tournament Round 3", Players: moderation.Players{Black: players[1], White: players[2]}},
	}

	for _, game := range games {
		store.AddGame(game)
	}

	store.Lock(LockedGameID)

	now := time.Now()

	incidents := []api.Incident{
		{Type: moderation.ReportStalling, GameID: 1001, ReporterID: 102, ReportedID: 101, Note: "black stopped moving", Created: now.Add(-time.Hour * 3)},
		{Type: moderation.ReportScoreCheating, GameID: 1002, ReporterID: 103, ReportedID: 104, Note: "dead stones marked alive", Created: now.Add(-time.Hour * 2)},
		{Type: moderation.ReportEscaping, GameID: LockedGameID, ReporterID: 103, ReportedID: 102, Note: "left during counting", Created: now.Add(-time.Hour)},
		{Type: moderation.ReportTroll, ReportedID: 104, Note: "flagged by chat filter", Created: now},
	}

	for _, incident := range incidents {
		store.AddIncident(incident)
	}
}
