package deck

import (
	"errors"
	"fmt"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/donlinch/archdon-sub001/pkg"
)

var (
	ErrEmptyDeck   = errors.New("deck has no cards")
	ErrUnknownDeck = errors.New("unknown deck")
)

type ring struct {
	canonical []models.Card
	live      []models.Card
}

// Manager holds one cyclic deck per deck type. Drawing rotates the deck: the card
// goes back to the bottom, so a deck never runs out.
type Manager struct {
	rng   pkg.RNG
	decks map[models.DeckType]*ring
}

func NewManager(rng pkg.RNG) *Manager {
	return &Manager{
		rng:   rng,
		decks: make(map[models.DeckType]*ring, 2),
	}
}

// Init shuffles cards into the live deck for t and keeps the unshuffled list for refills.
func (m *Manager) Init(t models.DeckType, cards []models.Card) error {
	if len(cards) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyDeck, t)
	}
	r := &ring{canonical: make([]models.Card, len(cards))}
	copy(r.canonical, cards)
	m.decks[t] = r
	m.refill(r)
	return nil
}

func (m *Manager) refill(r *ring) {
	r.live = make([]models.Card, len(r.canonical))
	copy(r.live, r.canonical)
	pkg.Shuffle(m.rng, len(r.live), func(i, j int) { r.live[i], r.live[j] = r.live[j], r.live[i] })
}

// Draw takes the top card of deck t and puts it back at the bottom.
func (m *Manager) Draw(t models.DeckType) (models.Card, error) {
	r, ok := m.decks[t]
	if !ok {
		return models.Card{}, fmt.Errorf("%w: %s", ErrUnknownDeck, t)
	}
	if len(r.live) == 0 {
		m.refill(r)
	}
	card := r.live[0]
	r.live = append(r.live[1:], card)
	return card, nil
}

func (m *Manager) Len(t models.DeckType) int {
	if r, ok := m.decks[t]; ok {
		return len(r.live)
	}
	return 0
}

// Order returns the live deck from top to bottom.
func (m *Manager) Order(t models.DeckType) []models.Card {
	r, ok := m.decks[t]
	if !ok {
		return nil
	}
	out := make([]models.Card, len(r.live))
	copy(out, r.live)
	return out
}
