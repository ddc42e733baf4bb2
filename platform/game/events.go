package game

import "github.com/donlinch/archdon-sub001/app/models"

type EventType string

const (
	EventTurnStart    EventType = "turn-start"
	EventMoveStep     EventType = "move-step"
	EventLand         EventType = "land"
	EventCardDrawn    EventType = "card-drawn"
	EventUnitsChanged EventType = "units-changed"
	EventGameOver     EventType = "game-over"
)

// Event is a notification for renderers. Nothing in the engine depends on
// whether an event is observed.
type Event struct {
	Type     EventType       `json:"type"`
	PlayerID int             `json:"player_id"`
	From     int             `json:"from"`
	To       int             `json:"to"`
	Square   int             `json:"square"`
	Summary  string          `json:"summary,omitempty"`
	Deck     models.DeckType `json:"deck,omitempty"`
	Card     *models.Card    `json:"card,omitempty"`
	Delta    int             `json:"delta"`
	Total    int             `json:"total"`
	Ranking  []Standing      `json:"ranking,omitempty"`
}

// Listener receives events synchronously while the controller holds its lock;
// it must not call back into the controller.
type Listener func(Event)

func (c *Controller) emit(ev Event) {
	if c.listener != nil {
		c.listener(ev)
	}
}
