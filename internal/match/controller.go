package match

import (
	"fmt"

	"github.com/coder/quartz"

	"github.com/lox/pokerarena/internal/game"
)

// Controller sequences hands for one match: button rotation, hand ids,
// deal seeds, and the manual-start gate when hands are under operator
// control. Called only from the session goroutine.
type Controller struct {
	engine *game.Engine
	clock  quartz.Clock

	control  string
	baseSeed uint64
	seeded   bool
	sequence int
	button   int
	started  bool
	armed    bool
}

// NewController creates a controller in the given hand-control mode.
// When seeded is false, each hand's seed is drawn from the clock.
func NewController(engine *game.Engine, clock quartz.Clock, control string, baseSeed uint64, seeded bool) *Controller {
	return &Controller{
		engine:   engine,
		clock:    clock,
		control:  control,
		baseSeed: baseSeed,
		seeded:   seeded,
	}
}

// Control returns the hand-control mode.
func (c *Controller) Control() string {
	return c.control
}

// Button returns the current button seat. Meaningless before the first
// hand is dealt.
func (c *Controller) Button() int {
	return c.button
}

// Arm records an operator START_HAND. It is accepted only under operator
// control with no hand in progress; the deal happens on the next
// ShouldDeal poll, which may wait for the table to become playable.
func (c *Controller) Arm() bool {
	if c.control != game.HandControlOperator || c.engine.Hand() != nil {
		return false
	}
	c.armed = true
	return true
}

// ShouldDeal reports whether the next hand may be dealt right now.
func (c *Controller) ShouldDeal() bool {
	if c.engine.Hand() != nil || !c.engine.CanStartHand() {
		return false
	}
	if c.control == game.HandControlOperator {
		return c.armed
	}
	return true
}

// Deal starts the next hand: the button moves to the next seat holding
// chips (the first hand starts at the lowest), the sequence number and
// clock date form the hand id, and the seed comes from configuration or
// the clock. Consumes the armed flag.
func (c *Controller) Deal() (string, uint64, []game.Event, error) {
	button := c.button
	if !c.started {
		eligible := c.engine.EligibleSeats()
		if len(eligible) == 0 {
			return "", 0, nil, game.ErrNotEnoughPlayers
		}
		button = eligible[0]
	} else {
		next, ok := c.engine.NextEligibleFrom(c.button)
		if !ok {
			return "", 0, nil, game.ErrNotEnoughPlayers
		}
		button = next
	}

	handID := fmt.Sprintf("H-%s-%05d", c.clock.Now().UTC().Format("20060102"), c.sequence)
	seed := c.nextSeed()

	events, err := c.engine.StartHand(handID, seed, button)
	if err != nil {
		return "", 0, nil, err
	}

	c.button = button
	c.started = true
	c.sequence++
	c.armed = false
	return handID, seed, events, nil
}

func (c *Controller) nextSeed() uint64 {
	if c.seeded {
		return c.baseSeed + uint64(c.sequence)
	}
	return uint64(c.clock.Now().UnixMilli()) & 0xFFFFFFFF
}

// Status is the operator advisory state. A new advisory goes out
// whenever any field changes.
type Status struct {
	InHand              bool `json:"in_hand"`
	AwaitingManualStart bool `json:"awaiting_manual_start"`
	ManualStartArmed    bool `json:"manual_start_armed"`
	PlayersReady        bool `json:"players_ready"`
	CanStart            bool `json:"can_start"`
}

// Status reports the current advisory state. PlayersReady additionally
// requires every seat holding chips to be connected, which is what an
// operator wants to see before starting a hand; the deal itself only
// needs two stacks.
func (c *Controller) Status() Status {
	inHand := c.engine.Hand() != nil
	canStart := !inHand && c.engine.CanStartHand()

	ready := c.engine.CanStartHand()
	for _, idx := range c.engine.EligibleSeats() {
		if !c.engine.Seat(idx).Connected {
			ready = false
			break
		}
	}

	return Status{
		InHand:              inHand,
		AwaitingManualStart: c.control == game.HandControlOperator && !inHand && !c.armed,
		ManualStartArmed:    c.armed,
		PlayersReady:        ready,
		CanStart:            canStart,
	}
}
