package match

import (
	"errors"
	"testing"

	"github.com/lox/pokerarena/internal/game"
)

func testEngine(t *testing.T, teams ...string) *game.Engine {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Seats = 6
	e := game.NewEngine(cfg)
	for _, team := range teams {
		if _, err := e.AssignSeat(team); err != nil {
			t.Fatalf("AssignSeat(%q): %v", team, err)
		}
	}
	return e
}

func TestRegistryClaimAndBind(t *testing.T) {
	t.Parallel()
	e := testEngine(t)
	r := NewRegistry(e, "")

	seat, err := r.Claim("Alpha", "")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if seat.Index != 0 {
		t.Errorf("Seat index: got %d, want 0", seat.Index)
	}

	if prev := r.Bind(0, 11); prev != 0 {
		t.Errorf("First bind returned prev=%d", prev)
	}
	if !e.Seat(0).Connected {
		t.Error("Seat not marked connected after bind")
	}

	// A reconnect replaces the binding and reports the old connection.
	if prev := r.Bind(0, 22); prev != 11 {
		t.Errorf("Rebind returned prev=%d, want 11", prev)
	}
	if got := r.BoundConn(0); got != 22 {
		t.Errorf("BoundConn: got %d, want 22", got)
	}
	if got := r.SeatForConn(22); got != 0 {
		t.Errorf("SeatForConn: got %d, want 0", got)
	}

	// The replaced connection's close must not unbind the new one.
	if r.Unbind(0, 11) {
		t.Error("Stale unbind cleared the binding")
	}
	if !e.Seat(0).Connected {
		t.Error("Stale unbind disconnected the seat")
	}

	if !r.Unbind(0, 22) {
		t.Error("Unbind by the owner failed")
	}
	if e.Seat(0).Connected {
		t.Error("Seat still connected after unbind")
	}
	if got := r.SeatForConn(22); got != -1 {
		t.Errorf("SeatForConn after unbind: got %d, want -1", got)
	}
}

func TestRegistryReclaimKeepsSeat(t *testing.T) {
	t.Parallel()
	e := testEngine(t)
	r := NewRegistry(e, "")

	first, err := r.Claim("Crushers", "")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	again, err := r.Claim("CRUSHERS", "")
	if err != nil {
		t.Fatalf("Reclaim: %v", err)
	}
	if again.Index != first.Index {
		t.Errorf("Reclaim moved seat: %d -> %d", first.Index, again.Index)
	}
}

func TestRegistryJoinCode(t *testing.T) {
	t.Parallel()
	e := testEngine(t)
	r := NewRegistry(e, "secret")

	if _, err := r.Claim("Alpha", "wrong"); !errors.Is(err, ErrBadJoinCode) {
		t.Errorf("Wrong code: got %v, want ErrBadJoinCode", err)
	}
	if _, err := r.Claim("Alpha", ""); !errors.Is(err, ErrBadJoinCode) {
		t.Errorf("Missing code: got %v, want ErrBadJoinCode", err)
	}
	if _, err := r.Claim("Alpha", "secret"); err != nil {
		t.Errorf("Correct code rejected: %v", err)
	}

	// No code configured: anything goes.
	open := NewRegistry(testEngine(t), "")
	if _, err := open.Claim("Beta", "whatever"); err != nil {
		t.Errorf("Open table rejected a code: %v", err)
	}
}
