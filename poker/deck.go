package poker

import (
	"math/rand"
)

// Deck is a shuffled 52-card deck dealt sequentially from the top.
// Decks built from equal seeds deal identical sequences, which is what
// makes a published hand seed reproducible.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck builds a full deck and shuffles it with rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52), rng: rng}
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.shuffle()
	return d
}

// NewSeededDeck builds a deck shuffled deterministically from a 64-bit
// seed.
func NewSeededDeck(seed uint64) *Deck {
	return NewDeck(rand.New(rand.NewSource(int64(seed))))
}

// shuffle runs Fisher-Yates over the full deck and rewinds the deal
// position.
func (d *Deck) shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// DealOne deals the next card, or 0 once the deck is exhausted.
func (d *Deck) DealOne() Card {
	cards := d.Deal(1)
	if cards == nil {
		return 0
	}
	return cards[0]
}

// Deal deals the next n cards, or nil when fewer than n remain. The
// returned slice is the caller's to keep; it does not alias the deck.
func (d *Deck) Deal(n int) []Card {
	if n > d.CardsRemaining() {
		return nil
	}
	cards := make([]Card, n)
	d.next += copy(cards, d.cards[d.next:])
	return cards
}

// Reset reshuffles the deck for a fresh deal using the same rng stream.
func (d *Deck) Reset() {
	d.shuffle()
}

// CardsRemaining returns the number of undealt cards.
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
