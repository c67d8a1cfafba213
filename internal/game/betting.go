package game

import (
	"fmt"

	"github.com/lox/pokerarena/poker"
)

// NextActor returns the seat owing the next decision, if any.
func (e *Engine) NextActor() (int, bool) {
	if e.hand == nil {
		return 0, false
	}
	// Operator forfeits can fold a queued seat out of turn; sweep any
	// seat that can no longer act.
	for len(e.hand.toAct) > 0 {
		front := e.hand.toAct[0]
		if seat := e.seats[front]; seat != nil && seat.CanAct() {
			return front, true
		}
		e.hand.toAct = e.hand.toAct[1:]
	}
	return 0, false
}

// LegalActions computes the legal move set for a seat in the current hand.
func (e *Engine) LegalActions(seatIdx int) (Legal, error) {
	if e.hand == nil {
		return Legal{}, ErrHandNotActive
	}
	seat := e.Seat(seatIdx)
	if seat == nil || !e.hand.isParticipant(seatIdx) || seat.HasFolded {
		return Legal{}, fmt.Errorf("%w: seat %d not live", ErrInvalidAction, seatIdx)
	}
	return e.legalFor(seat), nil
}

func (e *Engine) legalFor(seat *Seat) Legal {
	hand := e.hand
	owed := hand.CurrentBet - seat.Committed

	toCall := owed
	if toCall < 0 {
		toCall = 0
	}
	if toCall > seat.Stack {
		toCall = seat.Stack
	}

	legal := Legal{Actions: []ActionType{ActionFold}, ToCall: toCall}

	if owed <= 0 {
		legal.Actions = append(legal.Actions, ActionCheck)
	} else if seat.Stack > 0 {
		legal.Actions = append(legal.Actions, ActionCall)
		amount := toCall
		legal.CallAmount = &amount
	}

	// A raise needs chips beyond the call. When short of a full raise the
	// only legal amount is the all-in, which does not reopen action.
	if seat.Stack > 0 && (owed <= 0 || seat.Stack > toCall) {
		maxTo := seat.Committed + seat.Stack
		if maxTo > hand.CurrentBet {
			minTo := hand.CurrentBet + hand.MinRaiseIncrement
			if minTo > maxTo {
				minTo = maxTo
			}
			legal.Actions = append(legal.Actions, ActionRaiseTo)
			legal.MinRaiseTo = &minTo
			legal.MaxRaiseTo = &maxTo
		}
	}

	return legal
}

// Apply validates and applies one action from the current actor, returning
// the public events produced. Rejected actions leave the engine unchanged.
func (e *Engine) Apply(a Action) ([]Event, error) {
	if e.hand == nil {
		return nil, ErrHandNotActive
	}
	actor, ok := e.NextActor()
	if !ok || actor != a.Seat {
		return nil, ErrOutOfTurn
	}

	hand := e.hand
	seat := e.seats[a.Seat]
	legal := e.legalFor(seat)

	var first Event
	switch a.Type {
	case ActionFold:
		seat.HasFolded = true
		hand.toAct = hand.toAct[1:]
		first = NewFoldEvent(a.Seat)

	case ActionCheck:
		if !legal.Allows(ActionCheck) {
			return nil, fmt.Errorf("%w: cannot check facing a bet", ErrInvalidAction)
		}
		hand.toAct = hand.toAct[1:]
		first = NewCheckEvent(a.Seat)

	case ActionCall:
		if !legal.Allows(ActionCall) {
			return nil, fmt.Errorf("%w: nothing to call", ErrInvalidAction)
		}
		moved := e.commitChips(seat, hand.CurrentBet-seat.Committed)
		hand.toAct = hand.toAct[1:]
		first = NewCallEvent(a.Seat, moved)

	case ActionRaiseTo:
		if !legal.Allows(ActionRaiseTo) {
			return nil, fmt.Errorf("%w: raise unavailable", ErrInvalidAction)
		}
		maxTo := *legal.MaxRaiseTo
		fullTo := hand.CurrentBet + hand.MinRaiseIncrement
		switch {
		case a.Amount > maxTo:
			return nil, fmt.Errorf("%w: raise to %d exceeds stack", ErrInvalidAction, a.Amount)
		case a.Amount <= hand.CurrentBet:
			return nil, fmt.Errorf("%w: raise to %d does not exceed current bet %d", ErrInvalidAction, a.Amount, hand.CurrentBet)
		case a.Amount < fullTo && a.Amount != maxTo:
			return nil, fmt.Errorf("%w: raise to %d below minimum %d", ErrInvalidAction, a.Amount, fullTo)
		}

		delta := e.commitChips(seat, a.Amount-seat.Committed)
		previous := hand.CurrentBet
		hand.CurrentBet = a.Amount

		if a.Amount >= fullTo {
			// Full raise: everyone who can act owes a response.
			hand.MinRaiseIncrement = a.Amount - previous
			hand.LastAggressor = a.Seat
			hand.toAct = e.rotation(a.Seat+1, func(s *Seat) bool {
				return s.Index != a.Seat && hand.isParticipant(s.Index) && s.CanAct()
			})
		} else {
			// All-in short raise: action is not reopened.
			hand.toAct = hand.toAct[1:]
		}
		first = NewBetEvent(a.Seat, delta)

	default:
		return nil, fmt.Errorf("%w: unsupported action %q", ErrInvalidAction, a.Type)
	}

	events := []Event{first}
	more, err := e.advanceAfterAction()
	events = append(events, more...)
	if err != nil {
		return events, err
	}

	return events, e.CheckConservation()
}

// ForfeitSeat zeroes a seat by operator decree. If the seat is live in the
// current hand it is folded immediately; the stack is zeroed at hand
// settlement so committed chips stay in the pot as dead money. Outside a
// hand the stack is zeroed at once.
func (e *Engine) ForfeitSeat(idx int) ([]Event, error) {
	seat := e.Seat(idx)
	if seat == nil {
		return nil, fmt.Errorf("%w: no seat %d", ErrInvalidAction, idx)
	}
	if seat.Eliminated {
		return nil, nil
	}

	if e.hand == nil || !e.hand.isParticipant(idx) {
		e.conserved -= seat.Stack
		seat.Stack = 0
		seat.Eliminated = true
		return []Event{NewEliminatedEvent(idx)}, e.CheckConservation()
	}

	seat.forfeited = true
	if seat.HasFolded {
		return nil, nil
	}

	seat.HasFolded = true
	e.hand.removeFromQueue(idx)
	events := []Event{NewFoldEvent(idx)}
	more, err := e.advanceAfterAction()
	events = append(events, more...)
	if err != nil {
		return events, err
	}
	return events, e.CheckConservation()
}

// advanceAfterAction settles the hand or the street when the last action
// closed it: a lone live seat wins the pot without a showdown, an empty
// queue advances the street.
func (e *Engine) advanceAfterAction() ([]Event, error) {
	hand := e.hand
	live := e.liveSeats()

	if len(live) == 0 {
		return nil, fmt.Errorf("%w: no live seats in hand %s", ErrConservation, hand.HandID)
	}

	if len(live) == 1 {
		winner := e.seats[live[0]]
		var events []Event
		if hand.Pot > 0 {
			winner.Stack += hand.Pot
			events = append(events, NewPotAwardEvent(winner.Index, hand.Pot))
			hand.Pot = 0
		}
		hand.Phase = Showdown
		hand.toAct = nil
		events = append(events, e.settleHandEnd()...)
		return events, nil
	}

	if len(hand.toAct) == 0 {
		return e.advanceStreet()
	}
	return nil, nil
}

// advanceStreet deals community cards for the next street. When fewer than
// two seats can still bet, the remaining streets run out with no further
// prompts.
func (e *Engine) advanceStreet() ([]Event, error) {
	hand := e.hand
	var events []Event

	for {
		switch hand.Phase {
		case PreFlop:
			cards := hand.deck.Deal(3)
			if cards == nil {
				return events, fmt.Errorf("deck exhausted dealing flop")
			}
			hand.Community = append(hand.Community, cards...)
			hand.Phase = Flop
			events = append(events, NewFlopEvent(poker.Labels(cards)))
		case Flop:
			card := hand.deck.DealOne()
			if card == 0 {
				return events, fmt.Errorf("deck exhausted dealing turn")
			}
			hand.Community = append(hand.Community, card)
			hand.Phase = Turn
			events = append(events, NewTurnEvent(card.String()))
		case Turn:
			card := hand.deck.DealOne()
			if card == 0 {
				return events, fmt.Errorf("deck exhausted dealing river")
			}
			hand.Community = append(hand.Community, card)
			hand.Phase = River
			events = append(events, NewRiverEvent(card.String()))
		case River:
			hand.Phase = Showdown
			showdown, err := e.resolveShowdown()
			return append(events, showdown...), err
		default:
			return events, nil
		}

		for _, idx := range e.liveSeats() {
			e.seats[idx].resetForStreet()
		}
		hand.CurrentBet = 0
		hand.MinRaiseIncrement = e.cfg.BB
		hand.LastAggressor = -1

		actionable := e.rotation(hand.Button+1, func(s *Seat) bool {
			return hand.isParticipant(s.Index) && s.CanAct()
		})
		if len(actionable) >= 2 {
			hand.toAct = actionable
			return events, nil
		}
		// Fewer than two seats can bet: run the board out.
	}
}

// liveSeats returns the non-folded participants, ascending.
func (e *Engine) liveSeats() []int {
	var out []int
	for _, idx := range e.hand.participants {
		if !e.seats[idx].HasFolded {
			out = append(out, idx)
		}
	}
	return out
}
