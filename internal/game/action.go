package game

// ActionType is one of the four player moves, using its wire spelling.
type ActionType string

const (
	ActionFold    ActionType = "FOLD"
	ActionCheck   ActionType = "CHECK"
	ActionCall    ActionType = "CALL"
	ActionRaiseTo ActionType = "RAISE_TO"
)

// ParseActionType maps a wire string to an ActionType.
func ParseActionType(s string) (ActionType, bool) {
	switch ActionType(s) {
	case ActionFold, ActionCheck, ActionCall, ActionRaiseTo:
		return ActionType(s), true
	default:
		return "", false
	}
}

// Action is a player decision to apply to the hand in progress.
// Amount is the raise-to total and is only meaningful for RAISE_TO.
type Action struct {
	Seat   int
	Type   ActionType
	Amount int
}

// Legal describes the moves available to an actor. CallAmount, MinRaiseTo
// and MaxRaiseTo are nil when the corresponding move is unavailable, which
// serializes as null on the wire.
type Legal struct {
	Actions    []ActionType
	CallAmount *int
	MinRaiseTo *int
	MaxRaiseTo *int
	ToCall     int
}

// Allows reports whether the action type is in the legal set.
func (l Legal) Allows(t ActionType) bool {
	for _, a := range l.Actions {
		if a == t {
			return true
		}
	}
	return false
}

// Strings returns the wire labels of the legal actions.
func (l Legal) Strings() []string {
	out := make([]string, len(l.Actions))
	for i, a := range l.Actions {
		out[i] = string(a)
	}
	return out
}
