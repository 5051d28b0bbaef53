package moderation

// Player is one side of a game as reported by the server.
type Player struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Players struct {
	Black Player `json:"black"`
	White Player `json:"white"`
}

// EngineConfig is the subset of a game's engine configuration the moderation tools need.
type EngineConfig struct {
	GameID  int64   `json:"game_id"`
	Players Players `json:"players"`
}
