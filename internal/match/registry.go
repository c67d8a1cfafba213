package match

import (
	"errors"

	"github.com/lox/pokerarena/internal/game"
)

// ErrBadJoinCode is returned when a hello carries the wrong join code for
// a table that has one configured.
var ErrBadJoinCode = errors.New("join code mismatch")

// Registry resolves team identities to seats and tracks which connection
// currently speaks for each seat. Seats persist for the whole match; the
// binding is weak and cleared on disconnect. Called only from the session
// goroutine.
type Registry struct {
	engine   *game.Engine
	joinCode string
	bound    map[int]int64
}

// NewRegistry creates a registry over the engine's seat table. An empty
// joinCode disables join-code checking.
func NewRegistry(engine *game.Engine, joinCode string) *Registry {
	return &Registry{
		engine:   engine,
		joinCode: joinCode,
		bound:    make(map[int]int64),
	}
}

// Claim resolves a hello to a seat: the team's existing seat on a
// reconnect, the next free seat otherwise. Claim does not bind the
// connection; callers follow up with Bind once the welcome is sent.
func (r *Registry) Claim(team, joinCode string) (*game.Seat, error) {
	if r.joinCode != "" && joinCode != r.joinCode {
		return nil, ErrBadJoinCode
	}
	return r.engine.AssignSeat(team)
}

// Bind points a seat at a connection and marks it connected. Returns the
// previously bound connection id, or zero when none: the caller closes
// the replaced connection.
func (r *Registry) Bind(seat int, connID int64) int64 {
	prev := r.bound[seat]
	r.bound[seat] = connID
	r.engine.SetConnected(seat, true)
	return prev
}

// Unbind clears a seat's binding if connID still owns it, so a stale
// close from a replaced connection cannot knock out its successor.
// Reports whether the binding was cleared.
func (r *Registry) Unbind(seat int, connID int64) bool {
	if r.bound[seat] != connID {
		return false
	}
	delete(r.bound, seat)
	r.engine.SetConnected(seat, false)
	return true
}

// BoundConn returns the connection bound to a seat, or zero when the
// seat is unbound.
func (r *Registry) BoundConn(seat int) int64 {
	return r.bound[seat]
}

// SeatForConn returns the seat bound to a connection, or -1.
func (r *Registry) SeatForConn(connID int64) int {
	for seat, id := range r.bound {
		if id == connID {
			return seat
		}
	}
	return -1
}
