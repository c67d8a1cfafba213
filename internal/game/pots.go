package game

import "github.com/lox/pokerarena/poker"

// Pot is one contribution tier built at payout time. Folded seats
// contribute dead money but are never eligible.
type Pot struct {
	Amount   int
	Eligible []int // non-folded contributors, ascending
}

// buildSidePots peels the per-seat contributions into pot tiers. Each
// tier's level is the smallest remaining contribution among non-folded
// seats; every seat still holding chips in the pot pays up to that level.
// An uncalled excess comes back to its owner as a sole-eligible tier.
func (e *Engine) buildSidePots() []Pot {
	remaining := make(map[int]int)
	for _, idx := range e.hand.participants {
		if seat := e.seats[idx]; seat.TotalInPot > 0 {
			remaining[idx] = seat.TotalInPot
		}
	}

	var pots []Pot
	for {
		level := 0
		var eligible []int
		for _, idx := range e.hand.participants {
			if remaining[idx] <= 0 || e.seats[idx].HasFolded {
				continue
			}
			eligible = append(eligible, idx)
			if level == 0 || remaining[idx] < level {
				level = remaining[idx]
			}
		}
		if len(eligible) == 0 {
			break
		}

		pot := Pot{Eligible: eligible}
		for idx, left := range remaining {
			take := left
			if take > level {
				take = level
			}
			pot.Amount += take
			remaining[idx] -= take
		}
		pots = append(pots, pot)
	}
	return pots
}

// resolveShowdown reveals the live hands, awards each pot tier to its
// best eligible hand, and settles the hand. Ties split in integer chips;
// an indivisible remainder goes to the tied winner closest left of the
// button, and awards inside a pot follow that same rotation.
func (e *Engine) resolveShowdown() ([]Event, error) {
	hand := e.hand
	board := poker.Labels(hand.Community)

	var events []Event
	scores := make(map[int]poker.HandRank)
	for _, idx := range e.liveSeats() {
		seat := e.seats[idx]
		cards := make([]poker.Card, 0, len(seat.Hole)+len(hand.Community))
		cards = append(cards, seat.Hole...)
		cards = append(cards, hand.Community...)
		rank := poker.Evaluate(cards)
		scores[idx] = rank
		events = append(events, NewShowdownEvent(idx, seat.HoleLabels(), board, rank.Type().Name()))
	}

	for _, pot := range e.buildSidePots() {
		if pot.Amount <= 0 {
			continue
		}

		// Lower rank is the stronger hand.
		best := scores[pot.Eligible[0]]
		for _, idx := range pot.Eligible[1:] {
			if scores[idx] < best {
				best = scores[idx]
			}
		}
		winners := e.rotation(hand.Button+1, func(s *Seat) bool {
			rank, ok := scores[s.Index]
			return ok && rank == best && containsSeat(pot.Eligible, s.Index)
		})

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, idx := range winners {
			payout := share
			if i == 0 {
				payout += remainder
			}
			e.seats[idx].Stack += payout
			events = append(events, NewPotAwardEvent(idx, payout))
		}
		hand.Pot -= pot.Amount
	}

	events = append(events, e.settleHandEnd()...)
	return events, nil
}

// settleHandEnd closes the books on a finished hand: forfeited stacks
// leave the table, busted seats are flagged, and the per-hand chip
// counters reset. The conserved total drops by whatever was forfeited so
// the conservation check keeps holding.
func (e *Engine) settleHandEnd() []Event {
	for _, seat := range e.seats {
		if seat == nil {
			continue
		}
		if seat.forfeited {
			e.conserved -= seat.Stack
			seat.Stack = 0
			seat.forfeited = false
		}
		seat.Committed = 0
		seat.TotalInPot = 0
	}

	var events []Event
	for _, seat := range e.seats {
		if seat == nil || seat.Eliminated || seat.Stack > 0 {
			continue
		}
		seat.Eliminated = true
		events = append(events, NewEliminatedEvent(seat.Index))
	}
	return events
}

func containsSeat(seats []int, idx int) bool {
	for _, s := range seats {
		if s == idx {
			return true
		}
	}
	return false
}
