package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerarena/internal/game"
)

// Presentation mode values for the config surface.
const (
	PresentationOff = "off"
	PresentationOn  = "on"
)

// Config is the resolved host configuration: one server block and one
// table block, with defaults applied for anything the file leaves out.
type Config struct {
	Addr     string
	LogLevel string
	JoinCode string

	Variant             string
	Seats               int
	StartingStack       int
	SB                  int
	BB                  int
	MoveTimeMS          int
	HandControl         string
	Presentation        string
	PresentationDelayMS int

	// Seed is the deal seed base; nil draws each hand's seed from the
	// clock.
	Seed *int64
}

// configFile is the HCL shape. Blocks are optional; attributes where an
// explicit zero is meaningful are pointers so absence is detectable.
type configFile struct {
	Server *serverBlock `hcl:"server,block"`
	Table  *tableBlock  `hcl:"table,block"`
}

type serverBlock struct {
	Addr     string `hcl:"addr,optional"`
	LogLevel string `hcl:"log_level,optional"`
	JoinCode string `hcl:"join_code,optional"`
}

type tableBlock struct {
	Variant             string `hcl:"variant,optional"`
	Seats               int    `hcl:"seats,optional"`
	StartingStack       int    `hcl:"starting_stack,optional"`
	SB                  int    `hcl:"sb,optional"`
	BB                  int    `hcl:"bb,optional"`
	MoveTimeMS          *int   `hcl:"move_time_ms,optional"`
	HandControl         string `hcl:"hand_control,optional"`
	Presentation        string `hcl:"presentation,optional"`
	PresentationDelayMS *int   `hcl:"presentation_delay_ms,optional"`
	Seed                *int64 `hcl:"seed,optional"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Addr:                ":8080",
		LogLevel:            "info",
		Variant:             "HUNL",
		Seats:               6,
		StartingStack:       10000,
		SB:                  50,
		BB:                  100,
		MoveTimeMS:          15000,
		HandControl:         game.HandControlAuto,
		Presentation:        PresentationOff,
		PresentationDelayMS: 1500,
	}
}

// LoadConfig loads an HCL config file and fills in defaults. A missing
// file (or an empty path) yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("parse %s: %s", path, diags.Error())
	}

	var raw configFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return cfg, fmt.Errorf("decode %s: %s", path, diags.Error())
	}

	if s := raw.Server; s != nil {
		if s.Addr != "" {
			cfg.Addr = s.Addr
		}
		if s.LogLevel != "" {
			cfg.LogLevel = s.LogLevel
		}
		if s.JoinCode != "" {
			cfg.JoinCode = s.JoinCode
		}
	}
	if t := raw.Table; t != nil {
		if t.Variant != "" {
			cfg.Variant = t.Variant
		}
		if t.Seats != 0 {
			cfg.Seats = t.Seats
		}
		if t.StartingStack != 0 {
			cfg.StartingStack = t.StartingStack
		}
		if t.SB != 0 {
			cfg.SB = t.SB
		}
		if t.BB != 0 {
			cfg.BB = t.BB
		}
		if t.MoveTimeMS != nil {
			cfg.MoveTimeMS = *t.MoveTimeMS
		}
		if t.HandControl != "" {
			cfg.HandControl = t.HandControl
		}
		if t.Presentation != "" {
			cfg.Presentation = t.Presentation
		}
		if t.PresentationDelayMS != nil {
			cfg.PresentationDelayMS = *t.PresentationDelayMS
		}
		if t.Seed != nil {
			cfg.Seed = t.Seed
		}
	}

	return cfg, nil
}

// Validate checks the configuration for startup-fatal mistakes.
func (c Config) Validate() error {
	if err := c.GameConfig().Validate(); err != nil {
		return err
	}
	switch c.HandControl {
	case game.HandControlAuto, game.HandControlOperator:
	default:
		return fmt.Errorf("hand_control must be %q or %q, got %q",
			game.HandControlAuto, game.HandControlOperator, c.HandControl)
	}
	switch c.Presentation {
	case PresentationOff, PresentationOn:
	default:
		return fmt.Errorf("presentation must be %q or %q, got %q",
			PresentationOff, PresentationOn, c.Presentation)
	}
	if c.PresentationDelayMS < 0 {
		return fmt.Errorf("presentation_delay_ms must not be negative, got %d", c.PresentationDelayMS)
	}
	return nil
}

// GameConfig returns the table parameters in engine form.
func (c Config) GameConfig() game.Config {
	return game.Config{
		Variant:       c.Variant,
		Seats:         c.Seats,
		StartingStack: c.StartingStack,
		SB:            c.SB,
		BB:            c.BB,
		MoveTimeMS:    c.MoveTimeMS,
	}
}

// PresentationEnabled reports whether spectators default to paced
// delivery.
func (c Config) PresentationEnabled() bool {
	return c.Presentation == PresentationOn
}

// PresentationDelay returns the inter-event delay for paced delivery.
func (c Config) PresentationDelay() time.Duration {
	return time.Duration(c.PresentationDelayMS) * time.Millisecond
}

// MoveTime returns the per-turn allotment; zero disables the clock.
func (c Config) MoveTime() time.Duration {
	return time.Duration(c.MoveTimeMS) * time.Millisecond
}
