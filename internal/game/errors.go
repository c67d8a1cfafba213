package game

import "errors"

var (
	// ErrHandNotActive is returned when an action arrives with no hand in
	// progress.
	ErrHandNotActive = errors.New("no hand in progress")

	// ErrHandInProgress is returned when a hand is started while another
	// is still being played.
	ErrHandInProgress = errors.New("hand already in progress")

	// ErrNotEnoughPlayers is returned when fewer than two seats hold chips.
	ErrNotEnoughPlayers = errors.New("not enough players with chips")

	// ErrTableFull is returned when a new team claims a seat at a full table.
	ErrTableFull = errors.New("table is full")

	// ErrTeamRequired is returned when a seat claim carries an empty team name.
	ErrTeamRequired = errors.New("team name required")

	// ErrOutOfTurn is returned for an action from a seat that is not the
	// current actor. The engine state is unchanged.
	ErrOutOfTurn = errors.New("not this seat's turn")

	// ErrInvalidAction is returned for an action that is not legal for the
	// current actor. The engine state is unchanged. Wrapped errors carry
	// the specific reason.
	ErrInvalidAction = errors.New("invalid action")

	// ErrConservation is returned when the chip count drifts from the
	// table total after a transition. It is not recoverable; the match
	// must abort.
	ErrConservation = errors.New("chip conservation violated")
)
