package game

import (
	"fmt"
	"strings"

	"github.com/lox/pokerarena/poker"
)

// Engine owns the seat table and the hand in progress for one table.
// It performs no I/O: transitions return the public events they produce
// and the caller broadcasts them. All methods must be called from a
// single goroutine.
type Engine struct {
	cfg       Config
	seats     []*Seat
	hand      *HandState
	conserved int // expected sum of stacks plus pot
}

// NewEngine creates an engine for an empty table.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:   cfg,
		seats: make([]*Seat, cfg.Seats),
	}
}

// Config returns the table configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Seats returns the seat table. Unclaimed positions are nil.
func (e *Engine) Seats() []*Seat {
	return e.seats
}

// Seat returns the seat at idx, or nil when out of range or unclaimed.
func (e *Engine) Seat(idx int) *Seat {
	if idx < 0 || idx >= len(e.seats) {
		return nil
	}
	return e.seats[idx]
}

// Hand returns the hand in progress, or nil between hands.
func (e *Engine) Hand() *HandState {
	return e.hand
}

// AssignSeat claims a seat for a team, or returns the team's existing
// seat on a reclaim. Team names compare case-insensitively; the display
// form is the first one observed.
func (e *Engine) AssignSeat(team string) (*Seat, error) {
	display := strings.TrimSpace(team)
	if display == "" {
		return nil, ErrTeamRequired
	}

	key := strings.ToLower(display)
	if existing := e.FindSeatByTeam(key); existing != nil {
		return existing, nil
	}

	for idx, seat := range e.seats {
		if seat == nil {
			seat = &Seat{
				Index:   idx,
				Team:    display,
				TeamKey: key,
				Stack:   e.cfg.StartingStack,
			}
			e.seats[idx] = seat
			e.conserved += e.cfg.StartingStack
			return seat, nil
		}
	}

	return nil, ErrTableFull
}

// FindSeatByTeam returns the seat claimed by a team, matching
// case-insensitively. Returns nil when the team is unknown.
func (e *Engine) FindSeatByTeam(team string) *Seat {
	key := strings.ToLower(strings.TrimSpace(team))
	for _, seat := range e.seats {
		if seat != nil && seat.TeamKey == key {
			return seat
		}
	}
	return nil
}

// SetConnected updates a seat's connection flag.
func (e *Engine) SetConnected(idx int, connected bool) {
	if seat := e.Seat(idx); seat != nil {
		seat.Connected = connected
	}
}

// EligibleSeats returns the seats holding chips, ascending.
func (e *Engine) EligibleSeats() []int {
	var out []int
	for idx, seat := range e.seats {
		if seat != nil && seat.Stack > 0 {
			out = append(out, idx)
		}
	}
	return out
}

// CanStartHand reports whether at least two seats hold chips.
func (e *Engine) CanStartHand() bool {
	return len(e.EligibleSeats()) >= 2
}

// NextEligibleFrom returns the first seat holding chips clockwise after
// start. Used for button rotation between hands.
func (e *Engine) NextEligibleFrom(start int) (int, bool) {
	for i := 1; i <= e.cfg.Seats; i++ {
		idx := (start + i) % e.cfg.Seats
		if seat := e.seats[idx]; seat != nil && seat.Stack > 0 {
			return idx, true
		}
	}
	return 0, false
}

// StartHand deals a new hand. The button seat must hold chips; rotation
// is the caller's responsibility. Returned events start with POST_BLINDS.
func (e *Engine) StartHand(handID string, seed uint64, button int) ([]Event, error) {
	if e.hand != nil {
		return nil, ErrHandInProgress
	}

	participants := e.EligibleSeats()
	if len(participants) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if seat := e.Seat(button); seat == nil || seat.Stack <= 0 {
		return nil, fmt.Errorf("button seat %d holds no chips", button)
	}

	for _, idx := range participants {
		e.seats[idx].resetForHand()
	}

	hand := &HandState{
		HandID:            handID,
		Seed:              seed,
		Button:            button,
		Phase:             PreFlop,
		MinRaiseIncrement: e.cfg.BB,
		LastAggressor:     -1,
		deck:              poker.NewSeededDeck(seed),
		participants:      participants,
	}
	e.hand = hand

	if err := e.dealHoleCards(hand); err != nil {
		e.hand = nil
		return nil, err
	}

	events := []Event{e.postBlinds(hand)}
	e.buildPreflopQueue(hand)

	if err := e.CheckConservation(); err != nil {
		return events, err
	}
	return events, nil
}

// dealHoleCards gives two cards to each participant, one at a time,
// starting left of the button. No cards are burned.
func (e *Engine) dealHoleCards(hand *HandState) error {
	order := e.rotation(hand.Button+1, func(s *Seat) bool {
		return hand.isParticipant(s.Index)
	})
	for pass := 0; pass < 2; pass++ {
		for _, idx := range order {
			card := hand.deck.DealOne()
			if card == 0 {
				return fmt.Errorf("deck exhausted dealing hole cards")
			}
			seat := e.seats[idx]
			seat.Hole = append(seat.Hole, card)
		}
	}
	return nil
}

// postBlinds commits the blinds and fixes the preflop bet. Heads-up, the
// button posts the small blind.
func (e *Engine) postBlinds(hand *HandState) Event {
	var sbSeat, bbSeat int
	if len(hand.participants) == 2 {
		sbSeat = hand.Button
		bbSeat = e.nextParticipant(hand, hand.Button)
	} else {
		sbSeat = e.nextParticipant(hand, hand.Button)
		bbSeat = e.nextParticipant(hand, sbSeat)
	}

	e.commitChips(e.seats[sbSeat], e.cfg.SB)
	e.commitChips(e.seats[bbSeat], e.cfg.BB)

	sb, bb := e.seats[sbSeat], e.seats[bbSeat]
	hand.CurrentBet = sb.Committed
	if bb.Committed > hand.CurrentBet {
		hand.CurrentBet = bb.Committed
	}
	hand.MinRaiseIncrement = e.cfg.BB
	hand.LastAggressor = bbSeat

	return NewPostBlindsEvent(sbSeat, bbSeat, e.cfg.SB, e.cfg.BB)
}

// buildPreflopQueue seeds the to-act queue. First to act is the seat left
// of the big blind, except heads-up where the button acts first. Blind
// posts that already put a seat all-in leave it out of the queue.
func (e *Engine) buildPreflopQueue(hand *HandState) {
	start := hand.Button
	if len(hand.participants) > 2 {
		start = hand.LastAggressor + 1
	}
	hand.toAct = e.rotation(start, func(s *Seat) bool {
		return hand.isParticipant(s.Index) && s.CanAct()
	})
}

// nextParticipant returns the first participant clockwise after start.
func (e *Engine) nextParticipant(hand *HandState, start int) int {
	for i := 1; i <= e.cfg.Seats; i++ {
		idx := (start + i) % e.cfg.Seats
		if hand.isParticipant(idx) {
			return idx
		}
	}
	return start
}

// rotation collects the seats satisfying include, clockwise from start.
func (e *Engine) rotation(start int, include func(*Seat) bool) []int {
	var out []int
	for i := 0; i < e.cfg.Seats; i++ {
		idx := ((start + i) % e.cfg.Seats + e.cfg.Seats) % e.cfg.Seats
		if seat := e.seats[idx]; seat != nil && include(seat) {
			out = append(out, idx)
		}
	}
	return out
}

// commitChips moves chips from a seat into the pot, clamped to the stack.
// Returns the chips actually moved.
func (e *Engine) commitChips(seat *Seat, amount int) int {
	if amount > seat.Stack {
		amount = seat.Stack
	}
	seat.Stack -= amount
	seat.Committed += amount
	seat.TotalInPot += amount
	e.hand.Pot += amount
	return amount
}

// HandComplete reports whether the hand in progress has settled: showdown
// reached and the pot fully distributed.
func (e *Engine) HandComplete() bool {
	return e.hand != nil && e.hand.Phase == Showdown && e.hand.Pot == 0
}

// FinishHand discards the settled hand. The caller must have broadcast
// the hand's terminal frames first.
func (e *Engine) FinishHand() {
	e.hand = nil
}

// MatchOver reports whether at most one seat still holds chips.
func (e *Engine) MatchOver() bool {
	return len(e.EligibleSeats()) <= 1
}

// Winner returns the last seat holding chips, or nil when no seat does.
func (e *Engine) Winner() *Seat {
	eligible := e.EligibleSeats()
	if len(eligible) != 1 {
		return nil
	}
	return e.seats[eligible[0]]
}

// ConservedTotal returns the expected chip sum across stacks and pot.
// Forfeits reduce it explicitly.
func (e *Engine) ConservedTotal() int {
	return e.conserved
}

// CheckConservation verifies that no chips were created or destroyed by
// the last transition. A failure is not recoverable.
func (e *Engine) CheckConservation() error {
	total := 0
	for _, seat := range e.seats {
		if seat != nil {
			total += seat.Stack
		}
	}
	if e.hand != nil {
		total += e.hand.Pot
	}
	if total != e.conserved {
		return fmt.Errorf("%w: have %d chips, want %d", ErrConservation, total, e.conserved)
	}
	return nil
}
