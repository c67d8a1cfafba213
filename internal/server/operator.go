package server

import (
	"errors"

	"github.com/lox/pokerarena/internal/game"
	"github.com/lox/pokerarena/internal/protocol"
)

// handleControl routes an operator command. Control frames from
// connections that did not identify as operators are dropped, as are
// commands that do not apply to the current table state.
func (s *Session) handleControl(c *Conn, f *protocol.ControlFrame) {
	if s.kinds[c.ID()] != kindOperator {
		s.logger.Debug("Dropping control frame from non-operator", "conn", c.ID())
		return
	}

	switch f.Command {
	case protocol.CommandStartHand:
		if !s.control.Arm() {
			s.logger.Debug("START_HAND ignored", "conn", c.ID())
			return
		}
		s.logger.Info("Manual hand start requested")
		s.maybeDeal()

	case protocol.CommandSkipAction:
		if s.turn == nil {
			s.logger.Debug("SKIP_ACTION ignored, no seat is acting")
			return
		}
		seatIdx := s.turn.seat
		s.logger.Info("Manual skip applied", "seat", seatIdx)
		s.applyFallback(seatIdx)

	case protocol.CommandForfeitSeat:
		if f.Seat == nil {
			s.logger.Debug("FORFEIT_SEAT ignored, no seat given")
			return
		}
		s.handleForfeit(*f.Seat)

	default:
		s.logger.Debug("Dropping unknown control command", "command", f.Command)
	}
}

// handleForfeit zeroes a seat by operator decree. Mid-hand the seat
// folds now and its stack zeroes at settlement; between hands it zeroes
// immediately. A forfeit of a bystander seat leaves the acting seat's
// turn and clock untouched.
func (s *Session) handleForfeit(seatIdx int) {
	seat := s.engine.Seat(seatIdx)
	if seat == nil {
		s.logger.Debug("FORFEIT_SEAT ignored, seat unclaimed", "seat", seatIdx)
		return
	}

	prevTurn := s.turn
	events, err := s.engine.ForfeitSeat(seatIdx)
	if err != nil {
		if errors.Is(err, game.ErrConservation) {
			s.abortMatch(err)
			return
		}
		s.logger.Debug("FORFEIT_SEAT ignored", "seat", seatIdx, "error", err)
		return
	}
	s.logger.Info("Seat forfeited by operator", "seat", seatIdx, "team", seat.Team)

	if s.engine.Hand() == nil {
		s.broadcastEvents(events)
		s.broadcastLobby()
		s.broadcastSpectatorSnapshot()
		if s.engine.MatchOver() {
			s.endMatch()
			return
		}
		s.maybeDeal()
		return
	}

	s.broadcastEvents(events)
	if s.engine.HandComplete() {
		s.clearTurn()
		s.finishHand()
		return
	}
	s.broadcastSpectatorSnapshot()

	next, ok := s.engine.NextActor()
	if !ok {
		s.logger.Error("No actor after forfeit in live hand", "hand", s.engine.Hand().HandID)
		return
	}
	if prevTurn != nil && prevTurn.seat == next {
		// A bystander folded; the acting seat keeps its turn and clock.
		return
	}
	s.clearTurn()
	s.promptNextActor()
}
