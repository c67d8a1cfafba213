package game

// EventType identifies a public table event on the wire.
type EventType string

const (
	EventPostBlinds EventType = "POST_BLINDS"
	EventFold       EventType = "FOLD"
	EventCheck      EventType = "CHECK"
	EventCall       EventType = "CALL"
	EventBet        EventType = "BET"
	EventFlop       EventType = "FLOP"
	EventTurn       EventType = "TURN"
	EventRiver      EventType = "RIVER"
	EventShowdown   EventType = "SHOWDOWN"
	EventPotAward   EventType = "POT_AWARD"
	EventEliminated EventType = "ELIMINATED"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// Event is a public event produced by an engine transition. Each event
// marshals flat, with its type under the "ev" key.
type Event interface {
	EventType() EventType
}

// PostBlindsEvent is emitted once per hand after the blinds are posted.
type PostBlindsEvent struct {
	Ev     EventType `json:"ev"`
	SBSeat int       `json:"sb_seat"`
	BBSeat int       `json:"bb_seat"`
	SB     int       `json:"sb"`
	BB     int       `json:"bb"`
}

func (e PostBlindsEvent) EventType() EventType { return EventPostBlinds }

// NewPostBlindsEvent creates a POST_BLINDS event.
func NewPostBlindsEvent(sbSeat, bbSeat, sb, bb int) PostBlindsEvent {
	return PostBlindsEvent{Ev: EventPostBlinds, SBSeat: sbSeat, BBSeat: bbSeat, SB: sb, BB: bb}
}

// FoldEvent is emitted when a seat folds.
type FoldEvent struct {
	Ev   EventType `json:"ev"`
	Seat int       `json:"seat"`
}

func (e FoldEvent) EventType() EventType { return EventFold }

// NewFoldEvent creates a FOLD event.
func NewFoldEvent(seat int) FoldEvent {
	return FoldEvent{Ev: EventFold, Seat: seat}
}

// CheckEvent is emitted when a seat checks.
type CheckEvent struct {
	Ev   EventType `json:"ev"`
	Seat int       `json:"seat"`
}

func (e CheckEvent) EventType() EventType { return EventCheck }

// NewCheckEvent creates a CHECK event.
func NewCheckEvent(seat int) CheckEvent {
	return CheckEvent{Ev: EventCheck, Seat: seat}
}

// CallEvent is emitted when a seat calls. Amount is the chips actually
// moved, which is less than the table bet when the caller is all-in short.
type CallEvent struct {
	Ev     EventType `json:"ev"`
	Seat   int       `json:"seat"`
	Amount int       `json:"amount"`
}

func (e CallEvent) EventType() EventType { return EventCall }

// NewCallEvent creates a CALL event.
func NewCallEvent(seat, amount int) CallEvent {
	return CallEvent{Ev: EventCall, Seat: seat, Amount: amount}
}

// BetEvent is emitted for a bet or raise. Amount is the additional chips
// committed by the action, not the raise-to total.
type BetEvent struct {
	Ev     EventType `json:"ev"`
	Seat   int       `json:"seat"`
	Amount int       `json:"amount"`
}

func (e BetEvent) EventType() EventType { return EventBet }

// NewBetEvent creates a BET event.
func NewBetEvent(seat, amount int) BetEvent {
	return BetEvent{Ev: EventBet, Seat: seat, Amount: amount}
}

// FlopEvent reveals the three flop cards.
type FlopEvent struct {
	Ev    EventType `json:"ev"`
	Cards []string  `json:"cards"`
}

func (e FlopEvent) EventType() EventType { return EventFlop }

// NewFlopEvent creates a FLOP event.
func NewFlopEvent(cards []string) FlopEvent {
	return FlopEvent{Ev: EventFlop, Cards: cards}
}

// TurnEvent reveals the turn card.
type TurnEvent struct {
	Ev   EventType `json:"ev"`
	Card string    `json:"card"`
}

func (e TurnEvent) EventType() EventType { return EventTurn }

// NewTurnEvent creates a TURN event.
func NewTurnEvent(card string) TurnEvent {
	return TurnEvent{Ev: EventTurn, Card: card}
}

// RiverEvent reveals the river card.
type RiverEvent struct {
	Ev   EventType `json:"ev"`
	Card string    `json:"card"`
}

func (e RiverEvent) EventType() EventType { return EventRiver }

// NewRiverEvent creates a RIVER event.
func NewRiverEvent(card string) RiverEvent {
	return RiverEvent{Ev: EventRiver, Card: card}
}

// ShowdownEvent reveals one seat's hole cards and hand rank at showdown.
type ShowdownEvent struct {
	Ev    EventType `json:"ev"`
	Seat  int       `json:"seat"`
	Hand  []string  `json:"hand"`
	Board []string  `json:"board"`
	Rank  string    `json:"rank"`
}

func (e ShowdownEvent) EventType() EventType { return EventShowdown }

// NewShowdownEvent creates a SHOWDOWN event.
func NewShowdownEvent(seat int, hand, board []string, rank string) ShowdownEvent {
	return ShowdownEvent{Ev: EventShowdown, Seat: seat, Hand: hand, Board: board, Rank: rank}
}

// PotAwardEvent credits part of the pot to a seat. A seat whose raise went
// uncalled receives the excess back through a sole-eligible award.
type PotAwardEvent struct {
	Ev     EventType `json:"ev"`
	Seat   int       `json:"seat"`
	Amount int       `json:"amount"`
}

func (e PotAwardEvent) EventType() EventType { return EventPotAward }

// NewPotAwardEvent creates a POT_AWARD event.
func NewPotAwardEvent(seat, amount int) PotAwardEvent {
	return PotAwardEvent{Ev: EventPotAward, Seat: seat, Amount: amount}
}

// EliminatedEvent marks a seat busting out. It is emitted exactly once per
// seat, on the transition to a zero stack.
type EliminatedEvent struct {
	Ev   EventType `json:"ev"`
	Seat int       `json:"seat"`
}

func (e EliminatedEvent) EventType() EventType { return EventEliminated }

// NewEliminatedEvent creates an ELIMINATED event.
func NewEliminatedEvent(seat int) EliminatedEvent {
	return EliminatedEvent{Ev: EventEliminated, Seat: seat}
}
