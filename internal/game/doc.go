// Package game implements the core No-Limit Texas Hold'em engine for a
// single tournament table.
//
// The main type is Engine, which owns the seat table and the state of the
// hand in progress. The engine is pure with respect to I/O: every state
// transition returns the ordered list of public events it produced, and the
// caller decides how to broadcast them. Given the same seed, seats and
// action sequence, a hand replays identically.
//
// A hand is driven by three calls:
//
//	events, _ := engine.StartHand(handID, seed, button)
//	seat, ok := engine.NextActor()
//	events, _ = engine.Apply(game.Action{Seat: seat, Type: game.ActionCall})
//
// Betting is tracked with a single to-act queue: the front of the queue is
// the next actor, and a street is settled exactly when the queue is empty.
// A full raise rebuilds the queue so every live seat owes a response; an
// all-in short raise does not reopen action for seats that already acted.
package game
