package game

// Phase represents the stage of the hand in progress.
type Phase int

const (
	PreFlop Phase = iota
	Flop
	Turn
	River
	Showdown
)

// String returns the wire label for the phase.
func (p Phase) String() string {
	switch p {
	case PreFlop:
		return "PRE_FLOP"
	case Flop:
		return "FLOP"
	case Turn:
		return "TURN"
	case River:
		return "RIVER"
	case Showdown:
		return "SHOWDOWN"
	default:
		return "UNKNOWN"
	}
}
