package game

import "github.com/lox/pokerarena/poker"

// Seat is one position at the table. The seat owns the chips; connection
// lifetime is tracked separately by the registry and only reflected here
// through the Connected flag.
type Seat struct {
	Index      int
	Team       string // display form, first observed
	TeamKey    string // casefolded comparison key
	Stack      int
	Connected  bool
	Committed  int // chips committed this street
	TotalInPot int // chips committed this hand
	HasFolded  bool
	Eliminated bool
	Hole       []poker.Card

	forfeited bool // stack is zeroed at next hand settlement
}

// resetForHand clears per-hand state before dealing.
func (s *Seat) resetForHand() {
	s.Committed = 0
	s.TotalInPot = 0
	s.HasFolded = false
	s.Hole = s.Hole[:0]
}

// resetForStreet clears per-street state between betting rounds.
func (s *Seat) resetForStreet() {
	s.Committed = 0
}

// AllIn reports whether the seat has committed its whole stack.
func (s *Seat) AllIn() bool {
	return s.Stack == 0 && s.TotalInPot > 0
}

// CanAct reports whether the seat can still make betting decisions.
func (s *Seat) CanAct() bool {
	return !s.HasFolded && s.Stack > 0
}

// HoleLabels returns the seat's hole cards as wire labels.
func (s *Seat) HoleLabels() []string {
	return poker.Labels(s.Hole)
}
