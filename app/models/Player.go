package models

// Player is a seat at a game table; the in-game state lives in platform/game.
type Player struct {
	User_id  string
	Game_id  string
	Username string
	Seat     int
}

// PlayerDto is what the lobby shows for a seat.
type PlayerDto struct {
	User_id  string `json:"user_id"`
	Username string `json:"username"`
	Seat     int    `json:"seat"`
}
