package protocol

// Config is the table configuration block carried in welcome frames.
type Config struct {
	Variant       string `json:"variant"`
	Seats         int    `json:"seats"`
	StartingStack int    `json:"starting_stack"`
	SB            int    `json:"sb"`
	BB            int    `json:"bb"`
	MoveTimeMS    int    `json:"move_time_ms"`
}

// SpectatorConfig extends Config with the presentation fields included
// in spectator welcomes. PresentationDelayMS is null for live delivery.
type SpectatorConfig struct {
	Config
	PresentationMode    bool `json:"presentation_mode"`
	PresentationDelayMS *int `json:"presentation_delay_ms"`
}

// Welcome confirms a bot's seat claim.
type Welcome struct {
	TableID string `json:"table_id"`
	Seat    int    `json:"seat"`
	Config  Config `json:"config"`
}

// SpectatorWelcome confirms a spectator or operator connection.
type SpectatorWelcome struct {
	TableID string          `json:"table_id"`
	Config  SpectatorConfig `json:"config"`
}

// LobbyPlayer is one seat's public lobby line.
type LobbyPlayer struct {
	Seat      int    `json:"seat"`
	Team      string `json:"team"`
	Connected bool   `json:"connected"`
	Stack     int    `json:"stack"`
}

// Lobby is broadcast on every join and leave.
type Lobby struct {
	Players []LobbyPlayer `json:"players"`
}

// SeatStack pairs a seat with its chip count.
type SeatStack struct {
	Seat  int `json:"seat"`
	Stack int `json:"stack"`
}

// StartHand announces a new hand. Stacks are the pre-blind values.
type StartHand struct {
	HandID string      `json:"hand_id"`
	Seed   uint64      `json:"seed"`
	Button int         `json:"button"`
	Stacks []SeatStack `json:"stacks"`
}

// You is the acting seat's private view inside an act prompt.
type You struct {
	Hole      []string `json:"hole"`
	Stack     int      `json:"stack"`
	Committed int      `json:"committed"`
	ToCall    int      `json:"to_call"`
	TimeMS    int      `json:"time_ms"`
}

// Table is the fixed table block inside an act prompt.
type Table struct {
	SB     int `json:"sb"`
	BB     int `json:"bb"`
	Seats  int `json:"seats"`
	Button int `json:"button"`
}

// PlayerState is one seat's public betting state.
type PlayerState struct {
	Seat      int  `json:"seat"`
	Stack     int  `json:"stack"`
	HasFolded bool `json:"has_folded"`
	Committed int  `json:"committed"`
}

// Act is the private prompt sent to the seat owing a decision. The
// raise bounds are null when raising is not legal.
type Act struct {
	HandID            string        `json:"hand_id"`
	Seat              int           `json:"seat"`
	Phase             string        `json:"phase"`
	Pot               int           `json:"pot"`
	CurrentBet        int           `json:"current_bet"`
	MinRaiseIncrement int           `json:"min_raise_increment"`
	You               You           `json:"you"`
	Table             Table         `json:"table"`
	Players           []PlayerState `json:"players"`
	Community         []string      `json:"community"`
	Legal             []string      `json:"legal"`
	CallAmount        *int          `json:"call_amount"`
	MinRaiseTo        *int          `json:"min_raise_to"`
	MaxRaiseTo        *int          `json:"max_raise_to"`
}

// SnapshotYou is the reconnecting seat's private view.
type SnapshotYou struct {
	Seat   int      `json:"seat"`
	Hole   []string `json:"hole"`
	Stack  int      `json:"stack"`
	ToCall int      `json:"to_call"`
}

// Snapshot resumes a reconnecting bot mid-hand. The legal-action fields
// are present only when the snapshot's seat is the next actor.
type Snapshot struct {
	AtHandID        string        `json:"at_hand_id"`
	Phase           string        `json:"phase"`
	You             SnapshotYou   `json:"you"`
	Players         []PlayerState `json:"players"`
	Community       []string      `json:"community"`
	NextActor       *int          `json:"next_actor"`
	TimeMSRemaining int           `json:"time_ms_remaining"`
	Legal           []string      `json:"legal,omitempty"`
	CallAmount      *int          `json:"call_amount,omitempty"`
	MinRaiseTo      *int          `json:"min_raise_to,omitempty"`
	MaxRaiseTo      *int          `json:"max_raise_to,omitempty"`
}

// EndHand closes a hand with the settled stacks.
type EndHand struct {
	HandID string      `json:"hand_id"`
	Stacks []SeatStack `json:"stacks"`
}

// Winner identifies the seat holding all the chips at match end.
type Winner struct {
	Seat int    `json:"seat"`
	Team string `json:"team"`
}

// FinalStack is one seat's line in the match result.
type FinalStack struct {
	Seat  int    `json:"seat"`
	Team  string `json:"team"`
	Stack int    `json:"stack"`
}

// MatchEnd reports the match result. Winner is null when the match
// aborted without one.
type MatchEnd struct {
	Winner      *Winner      `json:"winner"`
	FinalStacks []FinalStack `json:"final_stacks"`
}

// ErrorFrame reports a protocol or rule violation to one connection.
type ErrorFrame struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// SpectatorSeat is one seat in the spectator snapshot, hole cards
// included: the spectator channel sees everything.
type SpectatorSeat struct {
	Seat      int      `json:"seat"`
	Team      string   `json:"team"`
	Stack     int      `json:"stack"`
	Committed int      `json:"committed"`
	Hole      []string `json:"hole"`
	HasFolded bool     `json:"has_folded"`
	Connected bool     `json:"connected"`
	IsButton  bool     `json:"is_button"`
}

// SpectatorHand is the live hand block of a spectator snapshot.
type SpectatorHand struct {
	HandID          string          `json:"hand_id"`
	TableID         string          `json:"table_id"`
	Pot             int             `json:"pot"`
	Phase           string          `json:"phase"`
	Community       []string        `json:"community"`
	Seats           []SpectatorSeat `json:"seats"`
	NextActor       *int            `json:"next_actor"`
	TimeRemainingMS *int            `json:"time_remaining_ms"`
	SB              int             `json:"sb"`
	BB              int             `json:"bb"`
}

// SpectatorSnapshot is the full-table view rebroadcast after every
// event burst. Hand is null between hands.
type SpectatorSnapshot struct {
	Hand   *SpectatorHand `json:"hand"`
	Config Config         `json:"config"`
}
