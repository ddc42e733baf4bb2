package board

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/donlinch/archdon-sub001/app/models"
)

//go:embed squares.json
var defaultSquares []byte

//go:embed cards.json
var defaultCards []byte

// LoadSquares reads the square list from path, or the built-in board when path is empty.
func LoadSquares(path string) ([]models.Square, error) {
	raw, err := readOr(path, defaultSquares)
	if err != nil {
		return nil, err
	}
	var squares []models.Square
	if err := json.Unmarshal(raw, &squares); err != nil {
		return nil, fmt.Errorf("parse squares: %w", err)
	}
	return squares, nil
}

// LoadCards reads the fate and chance lists from path, or the built-in cards when path is empty.
func LoadCards(path string) (models.CardSet, error) {
	raw, err := readOr(path, defaultCards)
	if err != nil {
		return models.CardSet{}, err
	}
	var set models.CardSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return models.CardSet{}, fmt.Errorf("parse cards: %w", err)
	}
	for _, c := range append(append([]models.Card{}, set.Fate...), set.Chance...) {
		if err := c.Effect.Validate(); err != nil {
			return models.CardSet{}, fmt.Errorf("card %q: %w", c.Description, err)
		}
	}
	return set, nil
}

func readOr(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}
