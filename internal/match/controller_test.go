package match

import (
	"fmt"
	"testing"

	"github.com/coder/quartz"

	"github.com/lox/pokerarena/internal/game"
)

func foldOut(t *testing.T, e *game.Engine) {
	t.Helper()
	for !e.HandComplete() {
		actor, ok := e.NextActor()
		if !ok {
			t.Fatal("No actor and hand not complete")
		}
		if _, err := e.Apply(game.Action{Seat: actor, Type: game.ActionFold}); err != nil {
			t.Fatalf("Apply fold: %v", err)
		}
	}
	e.FinishHand()
}

func TestControllerAutoDeals(t *testing.T) {
	t.Parallel()
	e := testEngine(t, "a", "b", "c")
	clock := quartz.NewMock(t)
	c := NewController(e, clock, game.HandControlAuto, 0, false)

	if !c.ShouldDeal() {
		t.Fatal("ShouldDeal should be true with a playable table")
	}

	handID, seed, events, err := c.Deal()
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	wantID := fmt.Sprintf("H-%s-00000", clock.Now().UTC().Format("20060102"))
	if handID != wantID {
		t.Errorf("Hand id: got %q, want %q", handID, wantID)
	}
	if want := uint64(clock.Now().UnixMilli()) & 0xFFFFFFFF; seed != want {
		t.Errorf("Seed: got %d, want %d", seed, want)
	}
	if len(events) == 0 || events[0].EventType() != game.EventPostBlinds {
		t.Errorf("Deal events: got %v", events)
	}
	if e.Hand().Button != 0 {
		t.Errorf("First button: got %d, want 0", e.Hand().Button)
	}

	if c.ShouldDeal() {
		t.Error("ShouldDeal during a hand")
	}

	// Button walks to the next seat with chips and the sequence climbs.
	foldOut(t, e)
	handID, _, _, err = c.Deal()
	if err != nil {
		t.Fatalf("Second deal: %v", err)
	}
	if want := fmt.Sprintf("H-%s-00001", clock.Now().UTC().Format("20060102")); handID != want {
		t.Errorf("Second hand id: got %q, want %q", handID, want)
	}
	if e.Hand().Button != 1 {
		t.Errorf("Second button: got %d, want 1", e.Hand().Button)
	}
}

func TestControllerConfiguredSeed(t *testing.T) {
	t.Parallel()
	e := testEngine(t, "a", "b")
	c := NewController(e, quartz.NewMock(t), game.HandControlAuto, 500, true)

	_, seed, _, err := c.Deal()
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	if seed != 500 {
		t.Errorf("First seed: got %d, want 500", seed)
	}

	foldOut(t, e)
	_, seed, _, err = c.Deal()
	if err != nil {
		t.Fatalf("Second deal: %v", err)
	}
	if seed != 501 {
		t.Errorf("Second seed: got %d, want 501", seed)
	}
}

func TestControllerButtonSkipsBustedSeat(t *testing.T) {
	t.Parallel()
	e := testEngine(t, "a", "b", "c")
	c := NewController(e, quartz.NewMock(t), game.HandControlAuto, 0, false)

	if _, _, _, err := c.Deal(); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	foldOut(t, e)

	if _, err := e.ForfeitSeat(1); err != nil {
		t.Fatalf("ForfeitSeat: %v", err)
	}
	if _, _, _, err := c.Deal(); err != nil {
		t.Fatalf("Second deal: %v", err)
	}
	if e.Hand().Button != 2 {
		t.Errorf("Button: got %d, want 2 (seat 1 busted)", e.Hand().Button)
	}
}

func TestControllerOperatorGate(t *testing.T) {
	t.Parallel()
	e := testEngine(t, "a", "b")
	c := NewController(e, quartz.NewMock(t), game.HandControlOperator, 0, false)

	if c.ShouldDeal() {
		t.Error("Operator mode dealt without START_HAND")
	}
	if !c.Arm() {
		t.Fatal("Arm rejected with no hand in progress")
	}
	if !c.ShouldDeal() {
		t.Error("ShouldDeal false after arming")
	}

	if _, _, _, err := c.Deal(); err != nil {
		t.Fatalf("Deal: %v", err)
	}

	// The deal consumed the arm, and arming mid-hand is rejected.
	if c.Arm() {
		t.Error("Arm accepted during a hand")
	}
	foldOut(t, e)
	if c.ShouldDeal() {
		t.Error("ShouldDeal true without a fresh START_HAND")
	}
}

func TestControllerStatus(t *testing.T) {
	t.Parallel()
	e := testEngine(t, "a", "b")
	c := NewController(e, quartz.NewMock(t), game.HandControlOperator, 0, false)

	st := c.Status()
	if st.InHand || !st.AwaitingManualStart || st.ManualStartArmed || !st.CanStart {
		t.Errorf("Idle status: %+v", st)
	}
	// Both teams hold chips but neither is connected yet.
	if st.PlayersReady {
		t.Errorf("PlayersReady with no connections: %+v", st)
	}

	e.SetConnected(0, true)
	e.SetConnected(1, true)
	if st = c.Status(); !st.PlayersReady {
		t.Errorf("PlayersReady with all seats connected: %+v", st)
	}

	c.Arm()
	if st = c.Status(); st.AwaitingManualStart || !st.ManualStartArmed {
		t.Errorf("Armed status: %+v", st)
	}

	if _, _, _, err := c.Deal(); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	st = c.Status()
	if !st.InHand || st.AwaitingManualStart || st.ManualStartArmed || st.CanStart {
		t.Errorf("In-hand status: %+v", st)
	}
}
