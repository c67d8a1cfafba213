package game

import (
	"fmt"
	"testing"
)

func testConfig() Config {
	return Config{
		Variant:       "HUNL",
		Seats:         6,
		StartingStack: 1000,
		SB:            50,
		BB:            100,
	}
}

// newTestEngine seats one team per stack and overrides the dealt stacks.
func newTestEngine(t *testing.T, cfg Config, stacks ...int) *Engine {
	t.Helper()
	e := NewEngine(cfg)
	for i, stack := range stacks {
		seat, err := e.AssignSeat(fmt.Sprintf("team-%d", i))
		if err != nil {
			t.Fatalf("AssignSeat(%d): %v", i, err)
		}
		e.conserved += stack - seat.Stack
		seat.Stack = stack
	}
	return e
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, ev := range events {
		out[i] = ev.EventType()
	}
	return out
}

func mustApply(t *testing.T, e *Engine, seat int, action ActionType, amount int) []Event {
	t.Helper()
	events, err := e.Apply(Action{Seat: seat, Type: action, Amount: amount})
	if err != nil {
		t.Fatalf("Apply(seat=%d %s %d): %v", seat, action, amount, err)
	}
	return events
}

func TestAssignSeat(t *testing.T) {
	t.Parallel()
	e := NewEngine(testConfig())

	alpha, err := e.AssignSeat("Alpha")
	if err != nil {
		t.Fatalf("AssignSeat: %v", err)
	}
	if alpha.Index != 0 || alpha.Stack != 1000 {
		t.Errorf("First seat: got index=%d stack=%d", alpha.Index, alpha.Stack)
	}

	// Same team, different case: same seat, original display form kept.
	again, err := e.AssignSeat("ALPHA")
	if err != nil {
		t.Fatalf("AssignSeat reclaim: %v", err)
	}
	if again != alpha {
		t.Error("Case-insensitive reclaim returned a different seat")
	}
	if again.Team != "Alpha" {
		t.Errorf("Display form changed to %q", again.Team)
	}

	if _, err := e.AssignSeat("  "); err != ErrTeamRequired {
		t.Errorf("Blank team: got %v, want ErrTeamRequired", err)
	}
}

func TestAssignSeatTableFull(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Seats = 2
	e := NewEngine(cfg)

	for i := 0; i < 2; i++ {
		if _, err := e.AssignSeat(fmt.Sprintf("team-%d", i)); err != nil {
			t.Fatalf("AssignSeat(%d): %v", i, err)
		}
	}
	if _, err := e.AssignSeat("late"); err != ErrTableFull {
		t.Errorf("Full table: got %v, want ErrTableFull", err)
	}
}

func TestStartHandPostsBlinds(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)

	events, err := e.StartHand("H-1", 42, 0)
	if err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 startup event, got %d", len(events))
	}
	blinds, ok := events[0].(PostBlindsEvent)
	if !ok {
		t.Fatalf("Expected PostBlindsEvent, got %T", events[0])
	}
	if blinds.SBSeat != 1 || blinds.BBSeat != 2 {
		t.Errorf("Blind seats: got sb=%d bb=%d, want sb=1 bb=2", blinds.SBSeat, blinds.BBSeat)
	}

	hand := e.Hand()
	if hand.CurrentBet != 100 {
		t.Errorf("CurrentBet: got %d, want 100", hand.CurrentBet)
	}
	if hand.MinRaiseIncrement != 100 {
		t.Errorf("MinRaiseIncrement: got %d, want 100", hand.MinRaiseIncrement)
	}
	if hand.Pot != 150 {
		t.Errorf("Pot: got %d, want 150", hand.Pot)
	}
	if e.Seat(1).Stack != 950 || e.Seat(2).Stack != 900 {
		t.Errorf("Stacks after blinds: sb=%d bb=%d", e.Seat(1).Stack, e.Seat(2).Stack)
	}

	// Each participant holds two distinct cards.
	seen := make(map[string]bool)
	for _, idx := range hand.Participants() {
		seat := e.Seat(idx)
		if len(seat.Hole) != 2 {
			t.Errorf("Seat %d has %d hole cards", idx, len(seat.Hole))
		}
		for _, label := range seat.HoleLabels() {
			if seen[label] {
				t.Errorf("Duplicate card dealt: %s", label)
			}
			seen[label] = true
		}
	}

	// Three-handed: first to act pre-flop is the button (left of BB).
	actor, ok := e.NextActor()
	if !ok || actor != 0 {
		t.Errorf("First actor: got %d ok=%v, want seat 0", actor, ok)
	}
}

func TestStartHandHeadsUpButtonIsSmallBlind(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Seats = 2
	e := newTestEngine(t, cfg, 1000, 1000)

	events, err := e.StartHand("H-1", 7, 0)
	if err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	blinds := events[0].(PostBlindsEvent)
	if blinds.SBSeat != 0 || blinds.BBSeat != 1 {
		t.Errorf("Heads-up blinds: got sb=%d bb=%d, want sb=0 bb=1", blinds.SBSeat, blinds.BBSeat)
	}

	// Button acts first pre-flop.
	if actor, _ := e.NextActor(); actor != 0 {
		t.Errorf("Pre-flop first actor: got %d, want button", actor)
	}

	// Button calls, BB checks; BB acts first on the flop.
	mustApply(t, e, 0, ActionCall, 0)
	mustApply(t, e, 1, ActionCheck, 0)
	if e.Hand().Phase != Flop {
		t.Fatalf("Phase: got %v, want Flop", e.Hand().Phase)
	}
	if actor, _ := e.NextActor(); actor != 1 {
		t.Errorf("Post-flop first actor: got %d, want BB", actor)
	}
}

func TestStartHandRequiresTwoStacks(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 0, 0)

	if _, err := e.StartHand("H-1", 1, 0); err != ErrNotEnoughPlayers {
		t.Errorf("StartHand: got %v, want ErrNotEnoughPlayers", err)
	}
}

func TestStartHandRejectsSecondHand(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000)

	if _, err := e.StartHand("H-1", 1, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	if _, err := e.StartHand("H-2", 2, 1); err != ErrHandInProgress {
		t.Errorf("Second StartHand: got %v, want ErrHandInProgress", err)
	}
}

func TestStartHandSkipsBustedSeats(t *testing.T) {
	t.Parallel()
	// Seat 1 is busted; blinds skip over it.
	e := newTestEngine(t, testConfig(), 1000, 0, 1000, 1000)

	events, err := e.StartHand("H-1", 9, 0)
	if err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	blinds := events[0].(PostBlindsEvent)
	if blinds.SBSeat != 2 || blinds.BBSeat != 3 {
		t.Errorf("Blind seats: got sb=%d bb=%d, want sb=2 bb=3", blinds.SBSeat, blinds.BBSeat)
	}
	if len(e.Hand().Participants()) != 3 {
		t.Errorf("Participants: got %v", e.Hand().Participants())
	}
	if len(e.Seat(1).Hole) != 0 {
		t.Error("Busted seat was dealt cards")
	}
}

func TestNextEligibleFrom(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 0, 1000)

	next, ok := e.NextEligibleFrom(0)
	if !ok || next != 2 {
		t.Errorf("NextEligibleFrom(0): got %d ok=%v, want 2", next, ok)
	}
	next, ok = e.NextEligibleFrom(2)
	if !ok || next != 0 {
		t.Errorf("NextEligibleFrom(2): got %d ok=%v, want 0 (wraps)", next, ok)
	}
}

func TestMatchOverAndWinner(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 3000, 0, 0)

	if !e.MatchOver() {
		t.Error("MatchOver should be true with one stack left")
	}
	winner := e.Winner()
	if winner == nil || winner.Index != 0 {
		t.Errorf("Winner: got %+v", winner)
	}
}

func TestDeterministicReplay(t *testing.T) {
	t.Parallel()

	// The same seed and action script must produce identical decks,
	// hole cards and community cards.
	play := func() ([]string, []string) {
		e := newTestEngine(t, testConfig(), 1000, 1000, 1000)
		if _, err := e.StartHand("H-1", 12345, 0); err != nil {
			t.Fatalf("StartHand: %v", err)
		}
		mustApply(t, e, 0, ActionCall, 0)
		mustApply(t, e, 1, ActionCall, 0)
		mustApply(t, e, 2, ActionCheck, 0)
		// Flop: everyone checks through to showdown.
		for e.Hand().Phase != Showdown {
			actor, ok := e.NextActor()
			if !ok {
				break
			}
			mustApply(t, e, actor, ActionCheck, 0)
		}
		var holes []string
		for _, idx := range e.Hand().Participants() {
			holes = append(holes, e.Seat(idx).HoleLabels()...)
		}
		return holes, e.Hand().CommunityLabels()
	}

	holesA, boardA := play()
	holesB, boardB := play()

	if fmt.Sprint(holesA) != fmt.Sprint(holesB) {
		t.Errorf("Hole cards diverged: %v vs %v", holesA, holesB)
	}
	if fmt.Sprint(boardA) != fmt.Sprint(boardB) {
		t.Errorf("Community diverged: %v vs %v", boardA, boardB)
	}
	if len(boardA) != 5 {
		t.Errorf("Expected full board, got %v", boardA)
	}
}

func TestChipConservationAcrossHand(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000, 1000)

	if _, err := e.StartHand("H-1", 99, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	// Call everything down to showdown; conservation is checked inside
	// every Apply, so any drift fails the hand.
	for e.Hand().Phase != Showdown {
		actor, ok := e.NextActor()
		if !ok {
			break
		}
		legal, err := e.LegalActions(actor)
		if err != nil {
			t.Fatalf("LegalActions: %v", err)
		}
		switch {
		case legal.Allows(ActionCheck):
			mustApply(t, e, actor, ActionCheck, 0)
		case legal.Allows(ActionCall):
			mustApply(t, e, actor, ActionCall, 0)
		default:
			mustApply(t, e, actor, ActionFold, 0)
		}
	}

	if !e.HandComplete() {
		t.Fatal("Hand did not complete")
	}
	total := 0
	for _, seat := range e.Seats() {
		if seat != nil {
			total += seat.Stack
		}
	}
	if total != 4000 {
		t.Errorf("Chips after hand: got %d, want 4000", total)
	}
}
