package server

import (
	"time"

	"github.com/coder/quartz"
)

// DecisionClock runs the countdown for the seat owing a decision. Expiry
// does not touch any state directly: it posts back to the session through
// the fire callback, tagged with the turn generation so a stale firing
// can be recognized and dropped.
//
// The clock can be paused while the acting seat is disconnected. This is
// a deliberate departure from plain wall-clock expiry: a bot that crashes
// mid-turn keeps its remaining time for the reconnect, and the operator
// decides when to give up on it instead of the timer folding it. Auto
// mode skips the pause so a slow or absent seat cannot stall the table.
type DecisionClock struct {
	clock quartz.Clock
	fire  func(seat int, gen uint64)

	timer     *quartz.Timer
	seat      int
	gen       uint64
	deadline  time.Time
	remaining time.Duration
	running   bool
	paused    bool
}

// NewDecisionClock creates a clock that reports expiry through fire.
func NewDecisionClock(clock quartz.Clock, fire func(seat int, gen uint64)) *DecisionClock {
	return &DecisionClock{clock: clock, fire: fire}
}

// Start begins a fresh countdown for a turn, replacing any previous one.
// A non-positive allotment leaves the clock disarmed.
func (d *DecisionClock) Start(seat int, gen uint64, allot time.Duration) {
	d.Cancel()
	if allot <= 0 {
		return
	}
	d.seat, d.gen = seat, gen
	d.running, d.paused = true, false
	d.deadline = d.clock.Now().Add(allot)
	d.timer = d.clock.AfterFunc(allot, func() {
		d.fire(seat, gen)
	})
}

// Pause freezes the countdown, keeping the remaining time.
func (d *DecisionClock) Pause() {
	if !d.running || d.paused {
		return
	}
	d.timer.Stop()
	d.timer = nil
	d.remaining = d.deadline.Sub(d.clock.Now())
	if d.remaining < 0 {
		d.remaining = 0
	}
	d.paused = true
}

// Resume restarts a paused countdown with the time it had left.
func (d *DecisionClock) Resume() {
	if !d.running || !d.paused {
		return
	}
	d.paused = false
	seat, gen := d.seat, d.gen
	d.deadline = d.clock.Now().Add(d.remaining)
	d.timer = d.clock.AfterFunc(d.remaining, func() {
		d.fire(seat, gen)
	})
}

// Cancel disarms the clock. Safe when already disarmed.
func (d *DecisionClock) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.running, d.paused = false, false
}

// Running reports whether a countdown exists, paused or not.
func (d *DecisionClock) Running() bool {
	return d.running
}

// Paused reports whether the countdown is frozen.
func (d *DecisionClock) Paused() bool {
	return d.paused
}

// Seat returns the seat the countdown belongs to.
func (d *DecisionClock) Seat() int {
	return d.seat
}

// Remaining returns the time left on the countdown, zero when disarmed.
func (d *DecisionClock) Remaining() time.Duration {
	switch {
	case !d.running:
		return 0
	case d.paused:
		return d.remaining
	default:
		left := d.deadline.Sub(d.clock.Now())
		if left < 0 {
			left = 0
		}
		return left
	}
}
