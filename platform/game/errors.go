package game

import "errors"

var (
	// ErrConfiguration is returned by StartGame when the board, decks, rules or
	// seat counts cannot produce a valid game.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidState is returned for commands that arrive while the game is not
	// waiting for them. The state is left untouched.
	ErrInvalidState = errors.New("invalid state")
)
