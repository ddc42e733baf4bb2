package models

const (
	GameOpen       = "open"
	GameInProgress = "in progress"
	GameFinished   = "finished"
)

type Game struct {
	Id         string
	Name       string
	Status     string
	TargetLaps int
}

type GameCreateDto struct {
	Name       string `json:"name"`
	TargetLaps int    `json:"target_laps"`
}

type VerifyGameDto struct {
	Code    string `query:"code"`
	User_id string `query:"user_id"`
}
