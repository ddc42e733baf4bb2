package game

import (
	"fmt"
	"sort"
	"sync"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/donlinch/archdon-sub001/pkg"
	"github.com/donlinch/archdon-sub001/platform/board"
	"github.com/donlinch/archdon-sub001/platform/deck"
	"github.com/sirupsen/logrus"
)

type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseAwaitingRoll Phase = "awaiting_roll"
	PhaseAwaitingCard Phase = "awaiting_card"
	PhaseOver         Phase = "over"
)

// Rules are the tunable amounts of a game.
type Rules struct {
	PassGoBonus     int `json:"pass_go_bonus"`
	StartBonus      int `json:"start_bonus"`
	InitialUnits    int `json:"initial_units"`
	JailTurnsToSkip int `json:"jail_turns_to_skip"`
	HospitalPenalty int `json:"hospital_penalty"`
	LotteryMin      int `json:"lottery_min"`
	LotteryMax      int `json:"lottery_max"`
}

func DefaultRules() Rules {
	return Rules{
		PassGoBonus:     100,
		StartBonus:      200,
		InitialUnits:    1500,
		JailTurnsToSkip: 2,
		HospitalPenalty: 100,
		LotteryMin:      50,
		LotteryMax:      300,
	}
}

func (r Rules) Validate() error {
	switch {
	case r.PassGoBonus < 0, r.StartBonus < 0, r.InitialUnits < 0, r.HospitalPenalty < 0:
		return fmt.Errorf("bonuses, penalties and initial units must not be negative")
	case r.JailTurnsToSkip < 0:
		return fmt.Errorf("jail turns must not be negative")
	case r.LotteryMin < 0 || r.LotteryMin > r.LotteryMax:
		return fmt.Errorf("lottery range [%d, %d] is invalid", r.LotteryMin, r.LotteryMax)
	}
	return nil
}

// Config is what collaborators hand over before a game can start.
type Config struct {
	Squares []models.Square
	Cards   models.CardSet
	Rules   Rules
}

// Dice produces one roll per call.
type Dice interface {
	Roll() int
}

type sixSided struct{ rng pkg.RNG }

func (d sixSided) Roll() int { return d.rng.Intn(6) + 1 }

type PendingCard struct {
	Deck  models.DeckType `json:"deck"`
	Card  models.Card     `json:"card"`
	depth int
}

type Standing struct {
	Rank          int    `json:"rank"`
	PlayerID      int    `json:"player_id"`
	Name          string `json:"name"`
	Units         int    `json:"units"`
	LapsCompleted int    `json:"laps_completed"`
}

// GameState is the only mutable root of a simulation. A Controller owns exactly one.
type GameState struct {
	Board              *board.Board
	Decks              *deck.Manager
	Players            []*Player
	CurrentPlayerIndex int
	TargetLaps         int
	Active             bool
	FinalRound         bool
	TurnNumber         int

	phase   Phase
	pending *PendingCard
	ranking []Standing
}

// Snapshot is a read-only copy of the game for renderers.
type Snapshot struct {
	Players            []Player     `json:"players"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	Active             bool         `json:"active"`
	Phase              Phase        `json:"phase"`
	TargetLaps         int          `json:"target_laps"`
	FinalRound         bool         `json:"final_round"`
	TurnNumber         int          `json:"turn_number"`
	PendingCard        *PendingCard `json:"pending_card,omitempty"`
	Ranking            []Standing   `json:"ranking,omitempty"`
}

type setup struct {
	playerCount int
	targetLaps  int
	names       []string
}

// Controller runs one game. Commands are serialised by an internal lock, so at
// most one player's turn resolves at a time.
type Controller struct {
	mu       sync.Mutex
	cfg      Config
	rules    Rules
	rng      pkg.RNG
	dice     Dice
	log      *logrus.Entry
	listener Listener

	state *GameState
	last  *setup
}

type Option func(*Controller)

func WithRNG(rng pkg.RNG) Option { return func(c *Controller) { c.rng = rng } }

func WithDice(d Dice) Option { return func(c *Controller) { c.dice = d } }

func WithLogger(l *logrus.Entry) Option { return func(c *Controller) { c.log = l } }

func WithListener(l Listener) Option { return func(c *Controller) { c.listener = l } }

func NewController(cfg Config, opts ...Option) *Controller {
	c := &Controller{cfg: cfg, rules: cfg.Rules}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = pkg.NewRNG()
	}
	if c.dice == nil {
		c.dice = sixSided{rng: c.rng}
	}
	if c.log == nil {
		c.log = logrus.NewEntry(logrus.StandardLogger())
	}
	return c
}

// StartGame seats playerCount players on the start square and gives the first
// turn to player 0. Optional names label the seats in order.
func (c *Controller) StartGame(playerCount, targetLaps int, names ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != nil && c.state.Active {
		return fmt.Errorf("%w: game already running", ErrInvalidState)
	}
	return c.start(&setup{playerCount: playerCount, targetLaps: targetLaps, names: names})
}

// Restart throws the current game away, including any pending card, and starts
// a new one with the same seats and configuration.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last == nil {
		return fmt.Errorf("%w: no game to restart", ErrInvalidState)
	}
	c.state = nil
	return c.start(c.last)
}

func (c *Controller) start(su *setup) error {
	if su.playerCount < 2 {
		return fmt.Errorf("%w: need at least 2 players, got %d", ErrConfiguration, su.playerCount)
	}
	if su.targetLaps < 1 {
		return fmt.Errorf("%w: target laps must be at least 1, got %d", ErrConfiguration, su.targetLaps)
	}
	if err := c.rules.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	b, err := board.New(c.cfg.Squares)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	decks := deck.NewManager(c.rng)
	if err := decks.Init(models.DeckFate, c.cfg.Cards.Fate); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := decks.Init(models.DeckChance, c.cfg.Cards.Chance); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	players := make([]*Player, su.playerCount)
	for i := range players {
		name := fmt.Sprintf("Player %d", i+1)
		if i < len(su.names) && su.names[i] != "" {
			name = su.names[i]
		}
		players[i] = &Player{
			ID:       i,
			Name:     name,
			Units:    c.rules.InitialUnits,
			Position: b.StartIndex(),
		}
	}

	c.state = &GameState{
		Board:      b,
		Decks:      decks,
		Players:    players,
		TargetLaps: su.targetLaps,
		Active:     true,
		phase:      PhaseIdle,
	}
	c.last = su
	c.log.WithFields(logrus.Fields{
		"players":     su.playerCount,
		"target_laps": su.targetLaps,
		"squares":     b.Len(),
	}).Info("game started")

	c.beginTurn()
	return nil
}

// RollDice rolls for the current player and resolves the move. If the player
// lands on a fate or chance square the turn pauses until AcknowledgeCard.
func (c *Controller) RollDice() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil || c.state.phase != PhaseAwaitingRoll {
		c.log.WithField("phase", c.phase()).Debug("roll rejected")
		return 0, fmt.Errorf("%w: not awaiting a roll", ErrInvalidState)
	}
	s := c.state
	p := s.Players[s.CurrentPlayerIndex]
	roll := c.dice.Roll()
	s.phase = PhaseIdle

	c.walk(p, roll, true, 0)
	if s.phase != PhaseAwaitingCard {
		c.finishTurn()
	}
	return roll, nil
}

// AcknowledgeCard applies the pending card to the current player.
func (c *Controller) AcknowledgeCard() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil || c.state.phase != PhaseAwaitingCard || c.state.pending == nil {
		c.log.WithField("phase", c.phase()).Debug("card acknowledgement rejected")
		return fmt.Errorf("%w: no card pending", ErrInvalidState)
	}
	s := c.state
	p := s.Players[s.CurrentPlayerIndex]
	pc := s.pending
	s.pending = nil
	s.phase = PhaseIdle

	c.applyCard(p, pc.Card.Effect, pc.depth)
	if s.phase != PhaseAwaitingCard {
		c.finishTurn()
	}
	return nil
}

// EndGame freezes the game and returns the final ranking. Calling it on a
// finished game returns the same ranking again.
func (c *Controller) EndGame() ([]Standing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return nil, fmt.Errorf("%w: no game", ErrInvalidState)
	}
	if c.state.Active {
		c.endGame()
	}
	return append([]Standing(nil), c.state.ranking...), nil
}

func (c *Controller) endGame() {
	s := c.state
	s.Active = false
	s.phase = PhaseOver
	s.pending = nil
	s.ranking = Rank(s.Players)

	fields := logrus.Fields{"turns": s.TurnNumber}
	if len(s.ranking) > 0 {
		fields["winner"] = s.ranking[0].PlayerID
	}
	c.log.WithFields(fields).Info("game over")
	c.emit(Event{Type: EventGameOver, Ranking: append([]Standing(nil), s.ranking...)})
}

// Rank orders players by units, richest first; ties go to the lower id.
func Rank(players []*Player) []Standing {
	out := make([]Standing, len(players))
	for i, p := range players {
		out[i] = Standing{PlayerID: p.ID, Name: p.Name, Units: p.Units, LapsCompleted: p.LapsCompleted}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// GetState returns a copy of the game that callers may keep and modify freely.
func (c *Controller) GetState() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return Snapshot{Phase: PhaseIdle}
	}
	s := c.state
	snap := Snapshot{
		Players:            make([]Player, len(s.Players)),
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		Active:             s.Active,
		Phase:              s.phase,
		TargetLaps:         s.TargetLaps,
		FinalRound:         s.FinalRound,
		TurnNumber:         s.TurnNumber,
		Ranking:            append([]Standing(nil), s.ranking...),
	}
	for i, p := range s.Players {
		snap.Players[i] = *p
	}
	if s.pending != nil {
		pc := *s.pending
		snap.PendingCard = &pc
	}
	return snap
}

// Board exposes the layout of the running game, or nil before the first start.
func (c *Controller) Board() *board.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nil
	}
	return c.state.Board
}

func (c *Controller) phase() Phase {
	if c.state == nil {
		return PhaseIdle
	}
	return c.state.phase
}
