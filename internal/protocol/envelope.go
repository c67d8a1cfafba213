// Package protocol implements the versioned JSON wire protocol spoken on
// the table's WebSocket endpoints. Every frame is one JSON object whose
// envelope fields (type, v, ts) sit flat alongside the payload fields.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
)

// Version is the protocol version stamped into every envelope.
const Version = 1

// Frame types.
const (
	// Client -> Server
	TypeHello   = "hello"
	TypeAction  = "action"
	TypeControl = "control"

	// Server -> Client (bot dialect)
	TypeWelcome   = "welcome"
	TypeLobby     = "lobby"
	TypeStartHand = "start_hand"
	TypeAct       = "act"
	TypeEvent     = "event"
	TypeEndHand   = "end_hand"
	TypeSnapshot  = "snapshot"
	TypeMatchEnd  = "match_end"
	TypeError     = "error"

	// Server -> Client (spectator dialect). Public frames are mirrored
	// under the prefix; welcome, snapshot and status have no bot
	// counterpart.
	SpectatorPrefix       = "spectator/"
	TypeSpectatorWelcome  = SpectatorPrefix + "welcome"
	TypeSpectatorSnapshot = SpectatorPrefix + "snapshot"
	TypeSpectatorStatus   = SpectatorPrefix + "status"
)

// Error codes carried by error frames.
const (
	CodeBadSchema     = "BAD_SCHEMA"
	CodeTeamTaken     = "TEAM_TAKEN"
	CodeTeamUnknown   = "TEAM_UNKNOWN"
	CodeTableFull     = "TABLE_FULL"
	CodeInvalidAction = "INVALID_ACTION"
	CodeOutOfTurn     = "OUT_OF_TURN"
	CodeActionTooLate = "ACTION_TOO_LATE"
)

var (
	// ErrBadSchema marks an inbound frame that is not valid JSON or is
	// missing required fields. The sender gets a BAD_SCHEMA error frame.
	ErrBadSchema = errors.New("malformed frame")

	// ErrUnknownType marks an inbound frame whose type is not part of
	// the protocol. Such frames are dropped without a reply.
	ErrUnknownType = errors.New("unknown frame type")
)

// Codec stamps outbound envelopes. The clock is injected so tests
// control the ts field.
type Codec struct {
	clock quartz.Clock
}

// NewCodec creates a codec stamping timestamps from the given clock.
func NewCodec(clock quartz.Clock) *Codec {
	return &Codec{clock: clock}
}

type envelope struct {
	Type string `json:"type"`
	V    int    `json:"v"`
	TS   string `json:"ts"`
}

// Encode builds one wire frame by splicing the payload's fields flat
// into the envelope object. The payload must marshal to a JSON object;
// nil means an envelope with no payload fields.
func (c *Codec) Encode(typ string, payload any) ([]byte, error) {
	head, err := json.Marshal(envelope{
		Type: typ,
		V:    Version,
		TS:   c.clock.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return head, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("payload for %s is not a JSON object", typ)
	}
	if len(body) == 2 {
		return head, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(head) + len(body))
	buf.Write(head[:len(head)-1])
	buf.WriteByte(',')
	buf.Write(body[1:])
	return buf.Bytes(), nil
}
