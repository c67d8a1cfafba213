package poker

import (
	"math/bits"
)

// HandType enumerates the categories of poker hands ordered from weakest
// to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Name returns the wire label for the hand type, e.g. "straight_flush".
func (ht HandType) Name() string {
	switch ht {
	case HighCard:
		return "high_card"
	case Pair:
		return "pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	default:
		return "unknown"
	}
}

// String returns a human-readable hand description.
func (ht HandType) String() string {
	switch ht {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank scores the best five-card hand drawable from a deal. Lower
// values are stronger, and two hands whose best five cards match score
// equal. Valid hands never score zero; Evaluate returns zero for bad
// input.
//
// A rank packs the hand category into the top bits and up to five
// tie-break card ranks into nibbles below it, most significant first,
// then subtracts the whole score from a ceiling so that stronger hands
// compare lower.
type HandRank uint32

const rankNibbles = 5

const scoreCeiling = uint32(StraightFlush)<<(4*rankNibbles) | (1<<(4*rankNibbles) - 1)

func packRank(cat HandType, tiebreaks ...uint8) HandRank {
	score := uint32(cat) << (4 * rankNibbles)
	shift := 4 * (rankNibbles - 1)
	for _, r := range tiebreaks {
		score |= uint32(r) << shift
		shift -= 4
	}
	return HandRank(scoreCeiling - score)
}

// Type returns the category of the hand (pair, flush, etc.).
func (hr HandRank) Type() HandType {
	return HandType((scoreCeiling - uint32(hr)) >> (4 * rankNibbles))
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	return hr.Type().String()
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins,
// 0 for a tie.
func CompareHands(a, b HandRank) int {
	if a < b {
		return 1
	} else if a > b {
		return -1
	}
	return 0
}

// Evaluate returns the rank of the best five-card hand drawable from the
// given cards. Accepts between five and seven cards; duplicates or any
// other count score zero.
func Evaluate(cards []Card) HandRank {
	if len(cards) < 5 || len(cards) > 7 {
		return 0
	}

	hand := NewHand(cards...)
	if hand.CountCards() != len(cards) {
		return 0
	}

	return evaluateHand(hand)
}

func evaluateHand(hand Hand) HandRank {
	var bySuit [4]uint16
	var present uint16
	for suit := uint8(0); suit < 4; suit++ {
		bySuit[suit] = hand.GetSuitMask(suit)
		present |= bySuit[suit]
	}

	// With at most seven cards only one suit can reach five, so the
	// first flush found is the only one.
	for _, suited := range bySuit {
		if bits.OnesCount16(suited) < 5 {
			continue
		}
		if high := straightHigh(suited); high > 0 {
			return packRank(StraightFlush, high)
		}
		return packRank(Flush, ranksHighToLow(keepTopRanks(suited, 5))...)
	}

	// Tally how many suits hold each rank without leaving bit space.
	var once, twice, thrice, all4 uint16
	for _, suited := range bySuit {
		all4 |= thrice & suited
		thrice |= twice & suited
		twice |= once & suited
		once |= suited
	}
	quads := all4
	trips := thrice &^ all4
	pairs := twice &^ thrice

	if quads != 0 {
		quad := topRank(quads)
		kicker := topRank(present &^ rankBit(quad))
		return packRank(FourOfAKind, quad, kicker)
	}

	if trips != 0 {
		trip := topRank(trips)
		// A second set fills as the pair when no plain pair beats it.
		if under := (pairs | trips) &^ rankBit(trip); under != 0 {
			return packRank(FullHouse, trip, topRank(under))
		}
	}

	if high := straightHigh(present); high > 0 {
		return packRank(Straight, high)
	}

	if trips != 0 {
		trip := topRank(trips)
		rest := present &^ rankBit(trip)
		k1 := topRank(rest)
		k2 := topRank(rest &^ rankBit(k1))
		return packRank(ThreeOfAKind, trip, k1, k2)
	}

	switch bits.OnesCount16(pairs) {
	case 0:
		// Fall through to high card.
	case 1:
		pair := topRank(pairs)
		rest := present &^ rankBit(pair)
		k1 := topRank(rest)
		rest &^= rankBit(k1)
		k2 := topRank(rest)
		k3 := topRank(rest &^ rankBit(k2))
		return packRank(Pair, pair, k1, k2, k3)
	default:
		// Three pairs are possible in seven cards; the third pair's
		// rank stays eligible as the kicker.
		hi := topRank(pairs)
		lo := topRank(pairs &^ rankBit(hi))
		kicker := topRank(present &^ (rankBit(hi) | rankBit(lo)))
		return packRank(TwoPair, hi, lo, kicker)
	}

	return packRank(HighCard, ranksHighToLow(keepTopRanks(present, 5))...)
}

// straightHigh returns the high-card rank of the best straight in the
// rank mask, 3 for the wheel, or 0 when there is none.
func straightHigh(mask uint16) uint8 {
	const wheelMask = 0x100F // ace plus deuce through five
	mask &= 0x1FFF           // drop anything above the ace bit

	// The cascade leaves a bit at the bottom of every five-long run.
	// The wheel is checked after it: any cascade straight outranks
	// five-high.
	runs := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if runs != 0 {
		return topRank(runs) + 4
	}

	if mask&wheelMask == wheelMask {
		return 3
	}

	return 0
}

func rankBit(rank uint8) uint16 {
	return 1 << rank
}

// topRank returns the highest rank set in a non-empty mask.
func topRank(mask uint16) uint8 {
	return uint8(bits.Len16(mask) - 1)
}

// keepTopRanks clears all but the n highest ranks of the mask.
func keepTopRanks(mask uint16, n int) uint16 {
	for bits.OnesCount16(mask) > n {
		mask &= mask - 1
	}
	return mask
}

// ranksHighToLow lists the set ranks of a mask in descending order.
func ranksHighToLow(mask uint16) []uint8 {
	ranks := make([]uint8, 0, rankNibbles)
	for mask != 0 {
		r := topRank(mask)
		ranks = append(ranks, r)
		mask &^= rankBit(r)
	}
	return ranks
}
