package poker

// PreflopTier buckets a starting hand by raw preflop strength. The
// tiers drive simple scripted strategies and make no claim to solver
// accuracy.
type PreflopTier int

const (
	// TierPremium is the top of the range: JJ+ and ace-king.
	TierPremium PreflopTier = iota
	// TierStrong covers TT and the big unpaired aces.
	TierStrong
	// TierPlayable covers the speculative rest worth seeing a flop
	// with: smaller pairs, suited broadways, suited connectors.
	TierPlayable
	// TierWeak is everything else.
	TierWeak
)

// String returns the tier name.
func (t PreflopTier) String() string {
	switch t {
	case TierPremium:
		return "premium"
	case TierStrong:
		return "strong"
	case TierPlayable:
		return "playable"
	default:
		return "weak"
	}
}

// PreflopTierOf buckets two hole cards. Invalid cards land in TierWeak.
func PreflopTierOf(a, b Card) PreflopTier {
	hi, lo := a.Rank(), b.Rank()
	if hi > Ace || lo > Ace {
		return TierWeak
	}
	if hi < lo {
		hi, lo = lo, hi
	}
	pair := hi == lo
	suited := a.Suit() == b.Suit()

	switch {
	case pair && hi >= Jack:
		return TierPremium
	case hi == Ace && lo == King:
		return TierPremium

	case pair && hi == Ten:
		return TierStrong
	case hi == Ace && lo >= Jack:
		return TierStrong

	case pair:
		return TierPlayable
	case suited && lo >= Ten:
		return TierPlayable
	case suited && hi-lo <= 2:
		return TierPlayable
	}
	return TierWeak
}

// PreflopTierOfLabels buckets hole cards given as wire labels like
// ["As","Kd"]. Anything unparseable lands in TierWeak.
func PreflopTierOfLabels(labels []string) PreflopTier {
	if len(labels) != 2 {
		return TierWeak
	}
	a, errA := ParseCard(labels[0])
	b, errB := ParseCard(labels[1])
	if errA != nil || errB != nil {
		return TierWeak
	}
	return PreflopTierOf(a, b)
}
