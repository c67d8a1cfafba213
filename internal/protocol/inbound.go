package protocol

import (
	"encoding/json"
	"fmt"
)

// Hello is the first frame on every connection. Bots send team (and
// join_code when the table has one); spectators and operators set role
// and, for spectators, an optional delivery mode.
type Hello struct {
	Team     string `json:"team"`
	JoinCode string `json:"join_code"`
	Role     string `json:"role"`
	Mode     string `json:"mode"`
	Control  string `json:"control"`
}

// Hello role and mode values.
const (
	RoleSpectator = "spectator"
	RoleOperator  = "operator"

	ModeLive         = "live"
	ModePresentation = "presentation"
)

// ActionFrame is a bot's reply to an act prompt. Amount is nil unless
// the frame carried one; RAISE_TO requires it.
type ActionFrame struct {
	HandID string `json:"hand_id"`
	Action string `json:"action"`
	Amount *int   `json:"amount"`
}

// ControlFrame is an operator command. Seat is only meaningful for
// FORFEIT_SEAT.
type ControlFrame struct {
	Command string `json:"command"`
	Seat    *int   `json:"seat"`
}

// Operator commands.
const (
	CommandStartHand   = "START_HAND"
	CommandSkipAction  = "SKIP_ACTION"
	CommandForfeitSeat = "FORFEIT_SEAT"
)

// Inbound is a decoded client frame: *Hello, *ActionFrame or
// *ControlFrame.
type Inbound interface {
	inboundFrame()
}

func (*Hello) inboundFrame()       {}
func (*ActionFrame) inboundFrame() {}
func (*ControlFrame) inboundFrame() {}

// Decode parses one inbound text frame. Unknown types return
// ErrUnknownType so callers can drop them silently; anything else
// malformed returns ErrBadSchema.
func Decode(data []byte) (Inbound, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSchema, err)
	}

	switch head.Type {
	case TypeHello:
		var f Hello
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSchema, err)
		}
		return &f, nil

	case TypeAction:
		var f ActionFrame
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSchema, err)
		}
		if f.Action == "" {
			return nil, fmt.Errorf("%w: action missing", ErrBadSchema)
		}
		if f.Action == "RAISE_TO" && f.Amount == nil {
			return nil, fmt.Errorf("%w: RAISE_TO requires amount", ErrBadSchema)
		}
		return &f, nil

	case TypeControl:
		var f ControlFrame
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSchema, err)
		}
		if f.Command == "" {
			return nil, fmt.Errorf("%w: command missing", ErrBadSchema)
		}
		return &f, nil

	case "":
		return nil, fmt.Errorf("%w: missing type", ErrBadSchema)

	default:
		return nil, ErrUnknownType
	}
}
