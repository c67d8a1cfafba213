package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single card represented as one set bit in a 64-bit word.
// Bit position = suit*13 + rank, so cards OR together into a Hand and
// per-suit rank masks fall out with a shift.
type Card uint64

// Hand is a set of cards (the OR of their bits).
type Hand uint64

// Rank constants, ascending. Two is the lowest rank, Ace the highest.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit constants in canonical order.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	invalidRank uint8 = 13
	invalidSuit uint8 = 4
)

var (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// ErrInvalidCard is returned when a card label cannot be parsed.
var ErrInvalidCard = fmt.Errorf("invalid card")

// NewCard creates a card from a rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	if rank > 12 || suit > 3 {
		return 0
	}
	return Card(1) << (uint(suit)*13 + uint(rank))
}

// Rank returns the card's rank (0=Two .. 12=Ace), or 13 for an invalid card.
func (c Card) Rank() uint8 {
	if bits.OnesCount64(uint64(c)) != 1 {
		return invalidRank
	}
	return uint8(bits.TrailingZeros64(uint64(c)) % 13)
}

// Suit returns the card's suit (0=Clubs .. 3=Spades), or 4 for an invalid card.
func (c Card) Suit() uint8 {
	if bits.OnesCount64(uint64(c)) != 1 {
		return invalidSuit
	}
	return uint8(bits.TrailingZeros64(uint64(c)) / 13)
}

// IsRed reports whether the card is a heart or diamond.
func (c Card) IsRed() bool {
	suit := c.Suit()
	return suit == Hearts || suit == Diamonds
}

// String returns the canonical two-character label, e.g. "As" or "2c".
func (c Card) String() string {
	rank, suit := c.Rank(), c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string([]byte{rankChars[rank], suitChars[suit]})
}

// MarshalText implements encoding.TextMarshaler using the canonical label.
func (c Card) MarshalText() ([]byte, error) {
	rank, suit := c.Rank(), c.Suit()
	if rank > 12 || suit > 3 {
		return nil, fmt.Errorf("%w: %016x", ErrInvalidCard, uint64(c))
	}
	return []byte{rankChars[rank], suitChars[suit]}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler from a canonical label.
func (c *Card) UnmarshalText(text []byte) error {
	card, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// ParseCard parses a two-character label like "As" or "Tc".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rank, err := parseRank(s[0])
	if err != nil {
		return 0, err
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return 0, err
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses concatenated card labels, e.g. "AsKsQs" or "As Ks Qs".
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrInvalidCard, len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("card at position %d: %w", i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests).
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

// Labels returns the canonical labels for a slice of cards.
func Labels(cards []Card) []string {
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = c.String()
	}
	return labels
}

func parseRank(c byte) (uint8, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	case '9':
		return Nine, nil
	case '8':
		return Eight, nil
	case '7':
		return Seven, nil
	case '6':
		return Six, nil
	case '5':
		return Five, nil
	case '4':
		return Four, nil
	case '3':
		return Three, nil
	case '2':
		return Two, nil
	default:
		return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidCard, string(c))
	}
}

func parseSuit(c byte) (uint8, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidCard, string(c))
	}
}

// NewHand creates a hand containing the given cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard reports whether the hand contains the card.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16(uint64(h)>>(uint(suit)*13)) & 0x1FFF
}

// Cards returns the hand's cards in bit order (clubs low to spades high).
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	rest := uint64(h)
	for rest != 0 {
		low := rest & -rest
		cards = append(cards, Card(low))
		rest &^= low
	}
	return cards
}
