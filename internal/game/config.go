package game

import "fmt"

// Hand control modes. In auto mode the next hand starts as soon as the
// table can play one; in operator mode hands wait for an explicit
// START_HAND command.
const (
	HandControlAuto     = "auto"
	HandControlOperator = "operator"
)

// Config holds the fixed table parameters for a match.
type Config struct {
	Variant       string
	Seats         int
	StartingStack int
	SB            int
	BB            int
	MoveTimeMS    int
}

// DefaultConfig returns the standard six-max table configuration.
func DefaultConfig() Config {
	return Config{
		Variant:       "HUNL",
		Seats:         6,
		StartingStack: 10000,
		SB:            50,
		BB:            100,
		MoveTimeMS:    15000,
	}
}

// Validate checks the table parameters. A zero MoveTimeMS is valid and
// disables the decision clock.
func (c Config) Validate() error {
	if c.Seats < 2 || c.Seats > 10 {
		return fmt.Errorf("seats must be between 2 and 10, got %d", c.Seats)
	}
	if c.StartingStack <= 0 {
		return fmt.Errorf("starting_stack must be positive, got %d", c.StartingStack)
	}
	if c.SB <= 0 {
		return fmt.Errorf("sb must be positive, got %d", c.SB)
	}
	if c.BB < 2*c.SB {
		return fmt.Errorf("bb must be at least twice sb, got sb=%d bb=%d", c.SB, c.BB)
	}
	if c.MoveTimeMS < 0 {
		return fmt.Errorf("move_time_ms must not be negative, got %d", c.MoveTimeMS)
	}
	return nil
}
