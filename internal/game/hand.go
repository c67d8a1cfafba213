package game

import "github.com/lox/pokerarena/poker"

// HandState is the state of the hand in progress. It is owned by the
// Engine and must only be read between transitions.
type HandState struct {
	HandID            string
	Seed              uint64
	Button            int
	Phase             Phase
	Pot               int
	CurrentBet        int
	MinRaiseIncrement int
	LastAggressor     int // seat index, -1 before the first raise
	Community         []poker.Card

	deck         *poker.Deck
	toAct        []int // front is the next actor; empty means street settled
	participants []int // seats dealt into this hand, ascending
}

// CommunityLabels returns the community cards as wire labels.
func (h *HandState) CommunityLabels() []string {
	return poker.Labels(h.Community)
}

// Participants returns the seats dealt into this hand.
func (h *HandState) Participants() []int {
	out := make([]int, len(h.participants))
	copy(out, h.participants)
	return out
}

func (h *HandState) isParticipant(seat int) bool {
	for _, idx := range h.participants {
		if idx == seat {
			return true
		}
	}
	return false
}

// removeFromQueue deletes a seat from the to-act queue wherever it sits.
// Used when a seat is folded out of turn by an operator forfeit.
func (h *HandState) removeFromQueue(seat int) {
	for i, idx := range h.toAct {
		if idx == seat {
			h.toAct = append(h.toAct[:i], h.toAct[i+1:]...)
			return
		}
	}
}
