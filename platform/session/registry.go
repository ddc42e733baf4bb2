package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/donlinch/archdon-sub001/platform/game"
	"github.com/donlinch/archdon-sub001/platform/logging"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoTable       = errors.New("no game running in this room")
	ErrTableRunning  = errors.New("game already running in this room")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNotSeated     = errors.New("not seated at this table")
	ErrDuplicateSeat = errors.New("user holds more than one seat")
)

// SnapshotStore persists the latest state of each room for readers outside the socket.
type SnapshotStore interface {
	Save(code string, snap game.Snapshot, turnUser string) error
	Delete(code string) error
}

// Broadcaster relays engine events to everyone in a room.
type Broadcaster interface {
	Broadcast(room, event string, payload interface{})
}

// Table is one running game and the users sitting at it, in seat order.
type Table struct {
	Code  string
	Seats []models.PlayerDto

	// mu makes the turn check and the command one step, so a duplicate
	// command cannot land on the next player's turn.
	mu  sync.Mutex
	ctl *game.Controller
}

func (t *Table) seatOf(userID string) int {
	for i, s := range t.Seats {
		if s.User_id == userID {
			return i
		}
	}
	return -1
}

// Registry keeps one controller per room.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table

	cfg   game.Config
	store SnapshotStore
	out   Broadcaster
	opts  []game.Option
}

func NewRegistry(cfg game.Config, store SnapshotStore, out Broadcaster, opts ...game.Option) *Registry {
	return &Registry{
		tables: make(map[string]*Table),
		cfg:    cfg,
		store:  store,
		out:    out,
		opts:   opts,
	}
}

// Open starts a game for the seated users. A finished game in the same room is replaced.
func (r *Registry) Open(code string, seats []models.PlayerDto, targetLaps int) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tables[code]; ok && t.ctl.GetState().Active {
		return nil, ErrTableRunning
	}
	// turns are matched to users by seat, so one user per seat
	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		if seen[s.User_id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, s.User_id)
		}
		seen[s.User_id] = true
	}

	t := &Table{Code: code, Seats: append([]models.PlayerDto(nil), seats...)}
	opts := append([]game.Option{
		game.WithLogger(logging.ForGame(code)),
		game.WithListener(func(ev game.Event) { r.out.Broadcast(code, string(ev.Type), ev) }),
	}, r.opts...)
	t.ctl = game.NewController(r.cfg, opts...)

	names := make([]string, len(seats))
	for i, s := range seats {
		names[i] = s.Username
	}
	if err := t.ctl.StartGame(len(seats), targetLaps, names...); err != nil {
		return nil, err
	}
	r.tables[code] = t
	r.publish(t)
	return t, nil
}

func (r *Registry) table(code string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[code]
	if !ok {
		return nil, ErrNoTable
	}
	return t, nil
}

// Roll rolls the dice for userID if it is their turn.
func (r *Registry) Roll(code, userID string) (int, error) {
	t, err := r.table(code)
	if err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkTurn(userID); err != nil {
		return 0, err
	}
	n, err := t.ctl.RollDice()
	if err != nil {
		return 0, err
	}
	r.publish(t)
	return n, nil
}

// Acknowledge confirms the card shown to userID.
func (r *Registry) Acknowledge(code, userID string) error {
	t, err := r.table(code)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkTurn(userID); err != nil {
		return err
	}
	if err := t.ctl.AcknowledgeCard(); err != nil {
		return err
	}
	r.publish(t)
	return nil
}

func (t *Table) checkTurn(userID string) error {
	st := t.ctl.GetState()
	if !st.Active || t.seatOf(userID) != st.CurrentPlayerIndex {
		return ErrNotYourTurn
	}
	return nil
}

func (r *Registry) Restart(code string) error {
	t, err := r.table(code)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ctl.Restart(); err != nil {
		return err
	}
	r.publish(t)
	return nil
}

// Leave ends a running game when one of its players walks away; the core keeps
// a fixed roster, so the remaining seats could not take turns past the empty one.
func (r *Registry) Leave(code, userID string) ([]game.Standing, error) {
	t, err := r.table(code)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seatOf(userID) < 0 {
		return nil, ErrNotSeated
	}
	if !t.ctl.GetState().Active {
		return nil, nil
	}
	ranking, err := t.ctl.EndGame()
	if err != nil {
		return nil, err
	}
	r.publish(t)
	return ranking, nil
}

func (r *Registry) State(code string) (game.Snapshot, error) {
	t, err := r.table(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	return t.ctl.GetState(), nil
}

// Close forgets a room and its stored snapshot.
func (r *Registry) Close(code string) error {
	r.mu.Lock()
	delete(r.tables, code)
	r.mu.Unlock()
	if err := r.store.Delete(code); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", code, err)
	}
	return nil
}

// publish stores and broadcasts the current state. Store failures are logged;
// the game carries on without them.
func (r *Registry) publish(t *Table) {
	st := t.ctl.GetState()
	turnUser := ""
	if st.Active && st.CurrentPlayerIndex < len(t.Seats) {
		turnUser = t.Seats[st.CurrentPlayerIndex].User_id
	}
	if err := r.store.Save(t.Code, st, turnUser); err != nil {
		logrus.WithError(err).WithField("game", t.Code).Warn("snapshot not stored")
	}
	r.out.Broadcast(t.Code, "state", st)
}
