package game

import (
	"errors"
	"testing"
)

func TestLegalActionsFacingBet(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)
	if _, err := e.StartHand("H-1", 3, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	legal, err := e.LegalActions(0)
	if err != nil {
		t.Fatalf("LegalActions: %v", err)
	}
	if !legal.Allows(ActionFold) || !legal.Allows(ActionCall) || !legal.Allows(ActionRaiseTo) {
		t.Errorf("Actions: got %v", legal.Strings())
	}
	if legal.Allows(ActionCheck) {
		t.Error("CHECK offered while facing the big blind")
	}
	if legal.ToCall != 100 || legal.CallAmount == nil || *legal.CallAmount != 100 {
		t.Errorf("Call: to_call=%d call_amount=%v", legal.ToCall, legal.CallAmount)
	}
	if legal.MinRaiseTo == nil || *legal.MinRaiseTo != 200 {
		t.Errorf("MinRaiseTo: got %v, want 200", legal.MinRaiseTo)
	}
	if legal.MaxRaiseTo == nil || *legal.MaxRaiseTo != 1000 {
		t.Errorf("MaxRaiseTo: got %v, want 1000", legal.MaxRaiseTo)
	}
}

func TestLegalActionsBigBlindOption(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)
	if _, err := e.StartHand("H-1", 3, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	mustApply(t, e, 0, ActionCall, 0)
	mustApply(t, e, 1, ActionCall, 0)

	// Everyone limped; the big blind owes nothing but may still raise.
	legal, err := e.LegalActions(2)
	if err != nil {
		t.Fatalf("LegalActions: %v", err)
	}
	if !legal.Allows(ActionCheck) || !legal.Allows(ActionRaiseTo) {
		t.Errorf("Actions: got %v", legal.Strings())
	}
	if legal.Allows(ActionCall) {
		t.Error("CALL offered with nothing to call")
	}
	if legal.ToCall != 0 || legal.CallAmount != nil {
		t.Errorf("Call: to_call=%d call_amount=%v", legal.ToCall, legal.CallAmount)
	}
	if legal.MinRaiseTo == nil || *legal.MinRaiseTo != 200 {
		t.Errorf("MinRaiseTo: got %v, want 200", legal.MinRaiseTo)
	}
}

func TestLegalActionsShortStackClampsCall(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 60, 1000, 1000)
	if _, err := e.StartHand("H-1", 3, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	// Seat 0 cannot cover the big blind: the call clamps to the stack
	// and no raise is offered.
	legal, err := e.LegalActions(0)
	if err != nil {
		t.Fatalf("LegalActions: %v", err)
	}
	if legal.ToCall != 60 || legal.CallAmount == nil || *legal.CallAmount != 60 {
		t.Errorf("Call: to_call=%d call_amount=%v", legal.ToCall, legal.CallAmount)
	}
	if legal.Allows(ActionRaiseTo) {
		t.Errorf("Raise offered to a covered stack: %v", legal.Strings())
	}

	events := mustApply(t, e, 0, ActionCall, 0)
	call, ok := events[0].(CallEvent)
	if !ok {
		t.Fatalf("Expected CallEvent, got %T", events[0])
	}
	if call.Amount != 60 {
		t.Errorf("Call amount: got %d, want 60", call.Amount)
	}
	if !e.Seat(0).AllIn() {
		t.Error("Seat 0 should be all-in")
	}
}

func TestApplyOutOfTurn(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)
	if _, err := e.StartHand("H-1", 3, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	if _, err := e.Apply(Action{Seat: 1, Type: ActionFold}); err != ErrOutOfTurn {
		t.Errorf("Out-of-turn fold: got %v, want ErrOutOfTurn", err)
	}
	// Rejection leaves the actor unchanged.
	if actor, _ := e.NextActor(); actor != 0 {
		t.Errorf("Actor after rejection: got %d, want 0", actor)
	}
}

func TestApplyRejectsIllegalMoves(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)
	if _, err := e.StartHand("H-1", 3, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	cases := []struct {
		name   string
		action Action
	}{
		{"check facing bet", Action{Seat: 0, Type: ActionCheck}},
		{"raise below minimum", Action{Seat: 0, Type: ActionRaiseTo, Amount: 150}},
		{"raise above stack", Action{Seat: 0, Type: ActionRaiseTo, Amount: 1001}},
		{"raise not exceeding bet", Action{Seat: 0, Type: ActionRaiseTo, Amount: 100}},
		{"unknown action", Action{Seat: 0, Type: ActionType("SHOVE")}},
	}
	for _, tc := range cases {
		if _, err := e.Apply(tc.action); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("%s: got %v, want ErrInvalidAction", tc.name, err)
		}
	}

	// The hand is untouched by the rejections.
	if e.Hand().Pot != 150 || e.Hand().CurrentBet != 100 {
		t.Errorf("State changed: pot=%d bet=%d", e.Hand().Pot, e.Hand().CurrentBet)
	}
	if actor, _ := e.NextActor(); actor != 0 {
		t.Errorf("Actor: got %d, want 0", actor)
	}
}

func TestFoldToWin(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)
	if _, err := e.StartHand("H-1", 3, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	// Button opens to 400, both blinds fold: the pot is 400+50+100.
	mustApply(t, e, 0, ActionRaiseTo, 400)
	mustApply(t, e, 1, ActionFold, 0)
	events := mustApply(t, e, 2, ActionFold, 0)

	var award *PotAwardEvent
	for _, ev := range events {
		if a, ok := ev.(PotAwardEvent); ok {
			award = &a
		}
	}
	if award == nil {
		t.Fatal("No POT_AWARD after the last fold")
	}
	if award.Seat != 0 || award.Amount != 550 {
		t.Errorf("Award: got seat=%d amount=%d, want seat=0 amount=550", award.Seat, award.Amount)
	}

	if !e.HandComplete() {
		t.Error("Hand should be complete")
	}
	if n := len(e.Hand().Community); n != 0 {
		t.Errorf("Community cards dealt on a pre-flop win: %d", n)
	}
	if got := e.Seat(0).Stack; got != 1150 {
		t.Errorf("Winner stack: got %d, want 1150", got)
	}
	if e.Seat(1).Stack != 950 || e.Seat(2).Stack != 900 {
		t.Errorf("Blind stacks: sb=%d bb=%d", e.Seat(1).Stack, e.Seat(2).Stack)
	}
}

func TestFullRaiseReopensAction(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)
	if _, err := e.StartHand("H-1", 3, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	events := mustApply(t, e, 0, ActionRaiseTo, 300)
	bet := events[0].(BetEvent)
	if bet.Amount != 300 {
		t.Errorf("Bet amount: got %d, want 300", bet.Amount)
	}
	if e.Hand().MinRaiseIncrement != 200 {
		t.Errorf("MinRaiseIncrement: got %d, want 200", e.Hand().MinRaiseIncrement)
	}
	if e.Hand().LastAggressor != 0 {
		t.Errorf("LastAggressor: got %d, want 0", e.Hand().LastAggressor)
	}

	mustApply(t, e, 1, ActionCall, 0)
	mustApply(t, e, 2, ActionCall, 0)
	if e.Hand().Phase != Flop {
		t.Fatalf("Phase: got %v, want Flop", e.Hand().Phase)
	}

	// Flop: seat 1 bets, seat 2 makes a full raise. Seat 1 already acted
	// this street but owes a response to the full raise.
	mustApply(t, e, 1, ActionRaiseTo, 100)
	mustApply(t, e, 2, ActionRaiseTo, 300)
	if e.Hand().MinRaiseIncrement != 200 {
		t.Errorf("MinRaiseIncrement after re-raise: got %d, want 200", e.Hand().MinRaiseIncrement)
	}

	mustApply(t, e, 0, ActionFold, 0)
	if actor, ok := e.NextActor(); !ok || actor != 1 {
		t.Errorf("Actor after full raise: got %d ok=%v, want 1", actor, ok)
	}
}

func TestShortAllInRaiseDoesNotReopen(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.SB = 25
	cfg.Seats = 2
	// The button has 150 total: 25 goes in as the small blind, leaving
	// an all-in of 150 short of the 200 a full raise would need.
	e := newTestEngine(t, cfg, 150, 1000)
	if _, err := e.StartHand("H-1", 5, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	legal, err := e.LegalActions(0)
	if err != nil {
		t.Fatalf("LegalActions: %v", err)
	}
	if legal.ToCall != 75 {
		t.Errorf("ToCall: got %d, want 75", legal.ToCall)
	}
	if legal.MinRaiseTo == nil || legal.MaxRaiseTo == nil {
		t.Fatalf("Raise missing: %v", legal.Strings())
	}
	if *legal.MinRaiseTo != 150 || *legal.MaxRaiseTo != 150 {
		t.Errorf("Raise bounds: got min=%d max=%d, want 150/150", *legal.MinRaiseTo, *legal.MaxRaiseTo)
	}

	events := mustApply(t, e, 0, ActionRaiseTo, 150)
	bet := events[0].(BetEvent)
	if bet.Amount != 125 {
		t.Errorf("All-in bet amount: got %d, want 125", bet.Amount)
	}

	// The short raise moves the bet but not the raise increment.
	if e.Hand().CurrentBet != 150 {
		t.Errorf("CurrentBet: got %d, want 150", e.Hand().CurrentBet)
	}
	if e.Hand().MinRaiseIncrement != 100 {
		t.Errorf("MinRaiseIncrement: got %d, want 100", e.Hand().MinRaiseIncrement)
	}

	legal, err = e.LegalActions(1)
	if err != nil {
		t.Fatalf("LegalActions: %v", err)
	}
	if legal.ToCall != 50 {
		t.Errorf("BB to_call: got %d, want 50", legal.ToCall)
	}
	if legal.MinRaiseTo == nil || *legal.MinRaiseTo != 250 {
		t.Errorf("BB min_raise_to: got %v, want 250", legal.MinRaiseTo)
	}

	// BB calls; with one seat all-in the board runs out to showdown.
	events = mustApply(t, e, 1, ActionCall, 0)
	types := eventTypes(events)
	if types[0] != EventCall || types[1] != EventFlop || types[2] != EventTurn || types[3] != EventRiver {
		t.Errorf("Run-out events: got %v", types)
	}
	if !e.HandComplete() {
		t.Error("Hand should reach showdown")
	}
	if len(e.Hand().Community) != 5 {
		t.Errorf("Community: got %d cards", len(e.Hand().Community))
	}
}

func TestShortAllInRaiseSkipsEarlierActor(t *testing.T) {
	t.Parallel()
	// Seat 1 holds 400 total: after the 50 blind its all-in over a 300
	// bet is short of the 500 full raise.
	e := newTestEngine(t, testConfig(), 1000, 400, 1000)
	if _, err := e.StartHand("H-1", 8, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	mustApply(t, e, 0, ActionRaiseTo, 300)
	mustApply(t, e, 1, ActionRaiseTo, 400)
	mustApply(t, e, 2, ActionCall, 0)

	// Seat 0 already responded to the 300 and the short raise does not
	// reopen the street: the flop is dealt without asking seat 0 again.
	if e.Hand().Phase != Flop {
		t.Fatalf("Phase: got %v, want Flop", e.Hand().Phase)
	}
	if e.Seat(0).TotalInPot != 300 {
		t.Errorf("Seat 0 in pot: got %d, want 300", e.Seat(0).TotalInPot)
	}
	if actor, ok := e.NextActor(); !ok || actor != 2 {
		t.Errorf("Flop actor: got %d ok=%v, want 2", actor, ok)
	}
}

func TestAllInSeatNotPrompted(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 400, 1000)
	if _, err := e.StartHand("H-1", 8, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	mustApply(t, e, 0, ActionRaiseTo, 300)
	mustApply(t, e, 1, ActionRaiseTo, 400)
	mustApply(t, e, 2, ActionCall, 0)

	if _, err := e.Apply(Action{Seat: 1, Type: ActionCheck}); err != ErrOutOfTurn {
		t.Errorf("All-in seat acting: got %v, want ErrOutOfTurn", err)
	}
}

func TestForfeitSeatOutsideHand(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)

	events, err := e.ForfeitSeat(1)
	if err != nil {
		t.Fatalf("ForfeitSeat: %v", err)
	}
	if len(events) != 1 || events[0].EventType() != EventEliminated {
		t.Fatalf("Events: got %v", eventTypes(events))
	}
	seat := e.Seat(1)
	if seat.Stack != 0 || !seat.Eliminated {
		t.Errorf("Seat after forfeit: stack=%d eliminated=%v", seat.Stack, seat.Eliminated)
	}
	if e.ConservedTotal() != 2000 {
		t.Errorf("ConservedTotal: got %d, want 2000", e.ConservedTotal())
	}

	// Forfeiting an eliminated seat is a no-op.
	events, err = e.ForfeitSeat(1)
	if err != nil || events != nil {
		t.Errorf("Repeat forfeit: events=%v err=%v", events, err)
	}
}

func TestForfeitSeatDuringHand(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)
	if _, err := e.StartHand("H-1", 21, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}

	// The big blind is forfeited before acting: folded now, its blind
	// stays in the pot, and the stack leaves the table at settlement.
	events, err := e.ForfeitSeat(2)
	if err != nil {
		t.Fatalf("ForfeitSeat: %v", err)
	}
	if len(events) != 1 || events[0].EventType() != EventFold {
		t.Fatalf("Events: got %v", eventTypes(events))
	}
	if got := e.Seat(2).Stack; got != 900 {
		t.Errorf("Stack zeroed before settlement: got %d", got)
	}

	mustApply(t, e, 0, ActionCall, 0)
	var settled []Event
	settled = append(settled, mustApply(t, e, 1, ActionCall, 0)...)
	for !e.HandComplete() {
		actor, ok := e.NextActor()
		if !ok {
			t.Fatal("No actor and hand not complete")
		}
		settled = append(settled, mustApply(t, e, actor, ActionCheck, 0)...)
	}

	eliminated := 0
	for _, ev := range settled {
		if el, ok := ev.(EliminatedEvent); ok {
			eliminated++
			if el.Seat != 2 {
				t.Errorf("Eliminated seat: got %d, want 2", el.Seat)
			}
		}
	}
	if eliminated != 1 {
		t.Errorf("ELIMINATED events: got %d, want 1", eliminated)
	}

	seat := e.Seat(2)
	if seat.Stack != 0 || !seat.Eliminated {
		t.Errorf("Seat after settlement: stack=%d eliminated=%v", seat.Stack, seat.Eliminated)
	}
	// 3000 dealt, 900 forfeited after the 100 blind went in.
	if e.ConservedTotal() != 2100 {
		t.Errorf("ConservedTotal: got %d, want 2100", e.ConservedTotal())
	}
	total := 0
	for _, s := range e.Seats() {
		if s != nil {
			total += s.Stack
		}
	}
	if total != 2100 {
		t.Errorf("Stacks after settlement: got %d, want 2100", total)
	}
}

func TestForfeitFoldedSeatDefersToSettlement(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, testConfig(), 1000, 1000, 1000)
	if _, err := e.StartHand("H-1", 21, 0); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	mustApply(t, e, 0, ActionFold, 0)

	// Already folded: no new events, but the stack goes at settlement.
	events, err := e.ForfeitSeat(0)
	if err != nil || events != nil {
		t.Fatalf("ForfeitSeat: events=%v err=%v", events, err)
	}

	mustApply(t, e, 1, ActionFold, 0)
	if !e.HandComplete() {
		t.Fatal("Hand should be complete")
	}
	if got := e.Seat(0).Stack; got != 0 {
		t.Errorf("Forfeited stack: got %d, want 0", got)
	}
	if !e.Seat(0).Eliminated {
		t.Error("Forfeited seat not eliminated")
	}
}
