package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerarena/internal/game"
	"github.com/lox/pokerarena/internal/match"
	"github.com/lox/pokerarena/internal/protocol"
)

// tableID labels the single table this host runs.
const tableID = "T-1"

// intent is one unit of work posted to the session goroutine. Transport
// reads, connection closes and clock expiries all arrive as intents, so
// every state transition happens on one goroutine.
type intent interface {
	sessionIntent()
}

type frameIntent struct {
	conn *Conn
	data []byte
}

type connClosed struct {
	conn *Conn
}

type turnExpired struct {
	seat int
	gen  uint64
}

func (frameIntent) sessionIntent() {}
func (connClosed) sessionIntent()  {}
func (turnExpired) sessionIntent() {}

// connKind is what a connection turned out to be once it said hello.
type connKind int

const (
	kindPending connKind = iota
	kindPlayer
	kindSpectator
	kindOperator
)

// turn is the seat currently owed a decision. gen increments per turn so
// a clock firing for a finished turn can be recognized and dropped.
type turn struct {
	seat int
	gen  uint64
}

// Session drives one table from first connection to match end. All
// engine, registry and controller access happens on the Run goroutine;
// connection pumps and the decision clock only post intents.
type Session struct {
	cfg      Config
	engine   *game.Engine
	registry *match.Registry
	control  *match.Controller
	bcast    *Broadcaster
	dclock   *DecisionClock
	metrics  *Metrics
	logger   *log.Logger
	monitor  *Monitor

	intents chan intent
	done    chan struct{}

	conns       map[int64]*Conn
	kinds       map[int64]connKind
	turn        *turn
	turnGen     uint64
	handsPlayed int
	lastStatus  match.Status
	statusSent  bool
	finished    bool
	result      error
}

// NewSession wires a table from configuration. The clock drives the
// decision countdown, presentation pacing and envelope timestamps.
func NewSession(cfg Config, clock quartz.Clock, metrics *Metrics, logger *log.Logger) *Session {
	engine := game.NewEngine(cfg.GameConfig())
	codec := protocol.NewCodec(clock)

	var baseSeed uint64
	seeded := cfg.Seed != nil
	if seeded {
		baseSeed = uint64(*cfg.Seed)
	}

	s := &Session{
		cfg:      cfg,
		engine:   engine,
		registry: match.NewRegistry(engine, cfg.JoinCode),
		control:  match.NewController(engine, clock, cfg.HandControl, baseSeed, seeded),
		metrics:  metrics,
		logger:   logger.WithPrefix("session"),
		intents:  make(chan intent, 64),
		done:     make(chan struct{}),
		conns:    make(map[int64]*Conn),
		kinds:    make(map[int64]connKind),
	}
	s.bcast = NewBroadcaster(codec, clock, cfg.PresentationDelay(), metrics, logger)
	s.dclock = NewDecisionClock(clock, func(seat int, gen uint64) {
		s.post(turnExpired{seat: seat, gen: gen})
	})
	return s
}

// SetMonitor attaches a console monitor. Must be called before Run.
func (s *Session) SetMonitor(m *Monitor) {
	s.monitor = m
}

// post hands an intent to the session goroutine. It never blocks after
// Run has returned, so connection pumps can always exit.
func (s *Session) post(it intent) {
	select {
	case s.intents <- it:
	case <-s.done:
	}
}

// Run drives the table until the match ends or ctx is cancelled. It
// returns nil after a completed match and the fatal error after an
// aborted one.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("Table open",
		"seats", s.cfg.Seats,
		"blinds", fmt.Sprintf("%d/%d", s.cfg.SB, s.cfg.BB),
		"starting_stack", s.cfg.StartingStack,
		"hand_control", s.cfg.HandControl)

	for {
		select {
		case it := <-s.intents:
			s.dispatch(it)
			if s.finished {
				s.shutdown()
				return s.result
			}
			s.publishStatus()

		case <-ctx.Done():
			s.logger.Info("Table closing", "reason", ctx.Err())
			s.shutdown()
			return ctx.Err()
		}
	}
}

func (s *Session) dispatch(it intent) {
	switch v := it.(type) {
	case frameIntent:
		s.handleFrame(v.conn, v.data)
	case connClosed:
		s.handleClose(v.conn)
	case turnExpired:
		s.handleExpiry(v.seat, v.gen)
	}
}

// shutdown closes every connection politely and waits for final frames
// to flush. done is closed first so pumps blocked in post can exit.
func (s *Session) shutdown() {
	close(s.done)
	s.dclock.Cancel()
	for id, c := range s.conns {
		if s.kinds[id] == kindPending {
			c.Shutdown()
		}
	}
	s.bcast.Shutdown()
	s.bcast.Wait()
}

// publishStatus sends the operator advisory whenever any field changed.
func (s *Session) publishStatus() {
	st := s.control.Status()
	if s.statusSent && st == s.lastStatus {
		return
	}
	s.lastStatus, s.statusSent = st, true
	s.bcast.Status(st)
}

// handleFrame decodes and routes one inbound frame. The first frame on
// any connection must be a hello; afterwards unknown types are dropped
// and malformed frames cost a BAD_SCHEMA without losing the connection.
func (s *Session) handleFrame(c *Conn, data []byte) {
	id := c.ID()
	if _, ok := s.conns[id]; !ok {
		s.conns[id] = c
		s.kinds[id] = kindPending
	}
	pending := s.kinds[id] == kindPending

	msg, err := protocol.Decode(data)
	if err != nil {
		if errors.Is(err, protocol.ErrUnknownType) && !pending {
			s.logger.Debug("Dropping unknown frame type", "conn", id)
			return
		}
		reason := "malformed frame"
		if pending {
			reason = "expected hello"
		}
		s.protocolError(c, protocol.CodeBadSchema, reason, pending)
		return
	}

	switch f := msg.(type) {
	case *protocol.Hello:
		if !pending {
			s.logger.Debug("Dropping repeated hello", "conn", id)
			return
		}
		s.handleHello(c, f)

	case *protocol.ActionFrame:
		if pending {
			s.protocolError(c, protocol.CodeBadSchema, "expected hello", true)
			return
		}
		if s.kinds[id] != kindPlayer {
			s.logger.Debug("Dropping action from non-player", "conn", id)
			return
		}
		s.handleAction(c, f)

	case *protocol.ControlFrame:
		if pending {
			s.protocolError(c, protocol.CodeBadSchema, "expected hello", true)
			return
		}
		s.handleControl(c, f)
	}
}

func (s *Session) handleHello(c *Conn, h *protocol.Hello) {
	switch {
	case h.Role == protocol.RoleOperator:
		s.handleOperatorHello(c)
	case h.Role == protocol.RoleSpectator && h.Control != "":
		s.handleOperatorHello(c)
	case h.Role == protocol.RoleSpectator:
		s.handleSpectatorHello(c, h)
	default:
		s.handlePlayerHello(c, h)
	}
}

func (s *Session) handlePlayerHello(c *Conn, h *protocol.Hello) {
	seat, err := s.registry.Claim(h.Team, h.JoinCode)
	if err != nil {
		code := protocol.CodeBadSchema
		switch {
		case errors.Is(err, match.ErrBadJoinCode):
			code = protocol.CodeTeamUnknown
		case errors.Is(err, game.ErrTableFull):
			code = protocol.CodeTableFull
		}
		s.logger.Warn("Seat claim rejected", "team", h.Team, "error", err)
		s.protocolError(c, code, err.Error(), true)
		return
	}

	prev := s.registry.Bind(seat.Index, c.ID())
	if prev != 0 {
		if old := s.conns[prev]; old != nil {
			old.CloseWithCode(closeReplaced, "replaced by new connection")
		}
	}

	s.kinds[c.ID()] = kindPlayer
	s.bcast.AddPlayer(c)
	s.logger.Info("Seat claimed", "seat", seat.Index, "team", seat.Team, "stack", seat.Stack)

	s.bcast.Send(c, protocol.TypeWelcome, protocol.Welcome{
		TableID: tableID,
		Seat:    seat.Index,
		Config:  s.wireConfig(),
	})
	s.broadcastLobby()
	s.broadcastSpectatorSnapshot()

	if s.engine.Hand() == nil {
		s.maybeDeal()
		return
	}

	// Mid-hand rejoin: resume a paused clock, then replay state. The act
	// prompt goes out again with whatever time the seat has left.
	if s.turn != nil && s.turn.seat == seat.Index && s.dclock.Paused() {
		s.dclock.Resume()
	}
	s.bcast.Send(c, protocol.TypeSnapshot, s.snapshotFor(seat.Index))
	if s.turn != nil && s.turn.seat == seat.Index {
		s.sendActPrompt(seat.Index, s.remainingMS())
	}
}

func (s *Session) handleSpectatorHello(c *Conn, h *protocol.Hello) {
	mode := h.Mode
	switch mode {
	case protocol.ModeLive, protocol.ModePresentation:
	default:
		mode = protocol.ModeLive
		if s.cfg.PresentationEnabled() {
			mode = protocol.ModePresentation
		}
	}
	paced := mode == protocol.ModePresentation

	s.kinds[c.ID()] = kindSpectator
	s.logger.Info("Spectator connected", "conn", c.ID(), "mode", mode)

	s.bcast.Send(c, protocol.TypeSpectatorWelcome, protocol.SpectatorWelcome{
		TableID: tableID,
		Config:  s.spectatorWireConfig(paced),
	})
	s.bcast.Send(c, protocol.TypeSpectatorSnapshot, s.spectatorSnapshot())
	s.bcast.AddSpectator(c, paced)
}

func (s *Session) handleOperatorHello(c *Conn) {
	s.kinds[c.ID()] = kindOperator
	s.logger.Info("Operator connected", "conn", c.ID())

	s.bcast.Send(c, protocol.TypeSpectatorWelcome, protocol.SpectatorWelcome{
		TableID: tableID,
		Config:  s.spectatorWireConfig(false),
	})
	s.bcast.Send(c, protocol.TypeSpectatorSnapshot, s.spectatorSnapshot())
	st := s.control.Status()
	s.bcast.Send(c, protocol.TypeSpectatorStatus, st)
	s.lastStatus, s.statusSent = st, true
	s.bcast.AddOperator(c)
}

func (s *Session) handleClose(c *Conn) {
	id := c.ID()
	if _, ok := s.conns[id]; !ok {
		return
	}
	kind := s.kinds[id]
	delete(s.conns, id)
	delete(s.kinds, id)
	s.bcast.Remove(c)

	switch kind {
	case kindPlayer:
		seatIdx := s.registry.SeatForConn(id)
		if seatIdx < 0 || !s.registry.Unbind(seatIdx, id) {
			// A replacement connection owns the seat now.
			return
		}
		s.logger.Info("Seat disconnected", "seat", seatIdx)
		if s.turn != nil && s.turn.seat == seatIdx &&
			s.control.Control() == game.HandControlOperator && s.dclock.Running() {
			s.dclock.Pause()
			s.logger.Info("Move clock paused for disconnected seat", "seat", seatIdx)
		}
		s.broadcastLobby()
		s.broadcastSpectatorSnapshot()

	case kindSpectator, kindOperator:
		s.logger.Info("Spectator disconnected", "conn", id)
	}
}

func (s *Session) handleAction(c *Conn, f *protocol.ActionFrame) {
	seatIdx := s.registry.SeatForConn(c.ID())
	if seatIdx < 0 {
		s.logger.Debug("Dropping action from unbound connection", "conn", c.ID())
		return
	}

	hand := s.engine.Hand()
	if hand == nil || f.HandID != hand.HandID {
		s.protocolError(c, protocol.CodeActionTooLate, "no such hand in progress", false)
		return
	}
	if s.turn == nil || s.turn.seat != seatIdx {
		s.protocolError(c, protocol.CodeOutOfTurn, "not your turn", false)
		return
	}

	actionType, ok := game.ParseActionType(f.Action)
	if !ok {
		s.protocolError(c, protocol.CodeInvalidAction, "unknown action "+f.Action, false)
		return
	}
	amount := 0
	if f.Amount != nil {
		amount = *f.Amount
	}

	events, err := s.engine.Apply(game.Action{Seat: seatIdx, Type: actionType, Amount: amount})
	if err != nil {
		if errors.Is(err, game.ErrConservation) {
			s.abortMatch(err)
			return
		}
		// The turn and its clock are untouched; the seat may try again.
		code := protocol.CodeInvalidAction
		if errors.Is(err, game.ErrOutOfTurn) {
			code = protocol.CodeOutOfTurn
		}
		s.logger.Warn("Rejected action", "seat", seatIdx, "action", f.Action, "error", err)
		s.protocolError(c, code, err.Error(), false)
		return
	}

	s.clearTurn()
	s.metrics.Actions.WithLabelValues(string(actionType)).Inc()
	if s.monitor != nil {
		s.monitor.OnAction(seatIdx, string(actionType), amount)
	}
	s.afterTransition(events)
}

// handleExpiry fires when a seat's move clock runs out. Stale firings
// from already-finished turns are dropped by generation.
func (s *Session) handleExpiry(seat int, gen uint64) {
	if s.turn == nil || s.turn.gen != gen || s.turn.seat != seat {
		return
	}
	s.metrics.Timeouts.Inc()
	s.logger.Info("Move clock expired", "seat", seat)
	s.applyFallback(seat)
}

// applyFallback plays the forced action for a seat that timed out or was
// skipped: check when legal, otherwise call, otherwise fold.
func (s *Session) applyFallback(seatIdx int) {
	legal, err := s.engine.LegalActions(seatIdx)
	if err != nil {
		s.logger.Error("No legal actions for fallback", "seat", seatIdx, "error", err)
		return
	}

	action := game.ActionFold
	switch {
	case legal.Allows(game.ActionCheck):
		action = game.ActionCheck
	case legal.Allows(game.ActionCall):
		action = game.ActionCall
	}

	events, err := s.engine.Apply(game.Action{Seat: seatIdx, Type: action})
	if err != nil {
		if errors.Is(err, game.ErrConservation) {
			s.abortMatch(err)
			return
		}
		s.logger.Error("Fallback action rejected", "seat", seatIdx, "action", action, "error", err)
		return
	}

	s.logger.Info("Applied fallback action", "seat", seatIdx, "action", action)
	s.clearTurn()
	s.metrics.Actions.WithLabelValues(string(action)).Inc()
	if s.monitor != nil {
		s.monitor.OnAction(seatIdx, string(action), 0)
	}
	s.afterTransition(events)
}

// afterTransition broadcasts a transition's events and moves the table
// forward to the next prompt or the hand's settlement.
func (s *Session) afterTransition(events []game.Event) {
	s.broadcastEvents(events)
	if s.engine.HandComplete() {
		s.finishHand()
		return
	}
	s.broadcastSpectatorSnapshot()
	s.promptNextActor()
}

func (s *Session) promptNextActor() {
	seatIdx, ok := s.engine.NextActor()
	if !ok {
		s.logger.Error("No actor for live hand", "hand", s.engine.Hand().HandID)
		return
	}

	s.turnGen++
	s.turn = &turn{seat: seatIdx, gen: s.turnGen}

	if s.cfg.MoveTimeMS > 0 {
		s.dclock.Start(seatIdx, s.turnGen, s.cfg.MoveTime())
		if s.control.Control() == game.HandControlOperator && !s.engine.Seat(seatIdx).Connected {
			s.dclock.Pause()
		}
	}
	s.sendActPrompt(seatIdx, s.cfg.MoveTimeMS)
}

func (s *Session) clearTurn() {
	s.turn = nil
	s.dclock.Cancel()
}

func (s *Session) sendActPrompt(seatIdx, timeMS int) {
	prompt := s.actPayload(seatIdx, timeMS)
	if prompt == nil {
		return
	}
	if connID := s.registry.BoundConn(seatIdx); connID != 0 {
		if c := s.conns[connID]; c != nil {
			s.bcast.Send(c, protocol.TypeAct, *prompt)
		}
	}
}

func (s *Session) maybeDeal() {
	if !s.control.ShouldDeal() {
		return
	}
	handID, seed, events, err := s.control.Deal()
	if err != nil {
		if errors.Is(err, game.ErrConservation) {
			s.abortMatch(err)
			return
		}
		s.logger.Error("Failed to start hand", "error", err)
		return
	}

	s.handsPlayed++
	s.metrics.HandsStarted.Inc()
	hand := s.engine.Hand()
	s.logger.Info("Hand started", "hand", handID, "button", hand.Button, "seed", seed)
	if s.monitor != nil {
		s.monitor.OnHandStart(handID, hand.Button, s.monitorSeats(true))
	}

	s.bcast.Public(protocol.TypeStartHand, s.startHandPayload())
	s.broadcastEvents(events)
	s.broadcastSpectatorSnapshot()
	s.promptNextActor()
}

func (s *Session) finishHand() {
	hand := s.engine.Hand()
	payload := protocol.EndHand{HandID: hand.HandID, Stacks: s.currentStacks()}
	s.bcast.Public(protocol.TypeEndHand, payload)
	s.logger.Info("Hand complete", "hand", hand.HandID)
	if s.monitor != nil {
		s.monitor.OnHandEnd(hand.HandID, s.monitorSeats(false))
	}
	s.engine.FinishHand()

	if s.engine.MatchOver() {
		s.endMatch()
		return
	}
	s.broadcastSpectatorSnapshot()
	s.maybeDeal()
}

func (s *Session) endMatch() {
	payload := protocol.MatchEnd{FinalStacks: s.finalStacks()}
	winnerTeam := ""
	if winner := s.engine.Winner(); winner != nil {
		payload.Winner = &protocol.Winner{Seat: winner.Index, Team: winner.Team}
		winnerTeam = winner.Team
	}
	s.logger.Info("Match complete", "winner", winnerTeam, "hands", s.handsPlayed)
	if s.monitor != nil {
		s.monitor.OnMatchEnd(winnerTeam, s.handsPlayed)
	}
	s.bcast.Public(protocol.TypeMatchEnd, payload)
	s.finished = true
	s.result = nil
}

// abortMatch ends the match without a winner after an unrecoverable
// engine failure. The process exits nonzero.
func (s *Session) abortMatch(err error) {
	s.logger.Error("Aborting match", "error", err)
	s.bcast.Public(protocol.TypeMatchEnd, protocol.MatchEnd{FinalStacks: s.finalStacks()})
	s.finished = true
	s.result = err
}

func (s *Session) protocolError(c *Conn, code, msg string, fatal bool) {
	s.metrics.ProtocolErrors.WithLabelValues(code).Inc()
	s.bcast.Send(c, protocol.TypeError, protocol.ErrorFrame{Code: code, Msg: msg})
	if fatal {
		c.Shutdown()
	}
}

func (s *Session) broadcastEvents(events []game.Event) {
	for _, ev := range events {
		s.bcast.Public(protocol.TypeEvent, ev)
	}
}

func (s *Session) broadcastLobby() {
	s.bcast.Public(protocol.TypeLobby, s.lobbyPayload())
}

func (s *Session) broadcastSpectatorSnapshot() {
	s.bcast.Spectators(protocol.TypeSpectatorSnapshot, s.spectatorSnapshot(), false)
}

// remainingMS is the acting seat's time left, or the full allotment when
// no countdown is running yet.
func (s *Session) remainingMS() int {
	if s.dclock.Running() {
		return int(s.dclock.Remaining() / time.Millisecond)
	}
	return s.cfg.MoveTimeMS
}

func (s *Session) wireConfig() protocol.Config {
	return protocol.Config{
		Variant:       s.cfg.Variant,
		Seats:         s.cfg.Seats,
		StartingStack: s.cfg.StartingStack,
		SB:            s.cfg.SB,
		BB:            s.cfg.BB,
		MoveTimeMS:    s.cfg.MoveTimeMS,
	}
}

func (s *Session) spectatorWireConfig(paced bool) protocol.SpectatorConfig {
	sc := protocol.SpectatorConfig{Config: s.wireConfig(), PresentationMode: paced}
	if paced {
		delay := s.cfg.PresentationDelayMS
		sc.PresentationDelayMS = &delay
	}
	return sc
}

// claimedSeats returns the seats a team has claimed, ascending. Every
// player/stack list on the wire enumerates exactly these.
func (s *Session) claimedSeats() []*game.Seat {
	var out []*game.Seat
	for _, seat := range s.engine.Seats() {
		if seat != nil {
			out = append(out, seat)
		}
	}
	return out
}

func (s *Session) lobbyPayload() protocol.Lobby {
	lobby := protocol.Lobby{Players: []protocol.LobbyPlayer{}}
	for _, seat := range s.claimedSeats() {
		lobby.Players = append(lobby.Players, protocol.LobbyPlayer{
			Seat:      seat.Index,
			Team:      seat.Team,
			Connected: seat.Connected,
			Stack:     seat.Stack,
		})
	}
	return lobby
}

// startHandPayload lists pre-blind stacks: the blinds are committed by
// the time this is built, so they are added back.
func (s *Session) startHandPayload() protocol.StartHand {
	hand := s.engine.Hand()
	stacks := []protocol.SeatStack{}
	for _, seat := range s.claimedSeats() {
		stacks = append(stacks, protocol.SeatStack{Seat: seat.Index, Stack: seat.Stack + seat.TotalInPot})
	}
	return protocol.StartHand{
		HandID: hand.HandID,
		Seed:   hand.Seed,
		Button: hand.Button,
		Stacks: stacks,
	}
}

func (s *Session) currentStacks() []protocol.SeatStack {
	stacks := []protocol.SeatStack{}
	for _, seat := range s.claimedSeats() {
		stacks = append(stacks, protocol.SeatStack{Seat: seat.Index, Stack: seat.Stack})
	}
	return stacks
}

func (s *Session) finalStacks() []protocol.FinalStack {
	stacks := []protocol.FinalStack{}
	for _, seat := range s.claimedSeats() {
		stacks = append(stacks, protocol.FinalStack{Seat: seat.Index, Team: seat.Team, Stack: seat.Stack})
	}
	return stacks
}

// monitorSeats builds the per-seat lines for monitor callbacks. Hand
// start reports pre-blind stacks.
func (s *Session) monitorSeats(preBlind bool) []SeatInfo {
	seats := []SeatInfo{}
	for _, seat := range s.claimedSeats() {
		stack := seat.Stack
		if preBlind {
			stack += seat.TotalInPot
		}
		seats = append(seats, SeatInfo{Seat: seat.Index, Team: seat.Team, Stack: stack})
	}
	return seats
}

func (s *Session) playersPayload() []protocol.PlayerState {
	players := []protocol.PlayerState{}
	for _, seat := range s.claimedSeats() {
		players = append(players, protocol.PlayerState{
			Seat:      seat.Index,
			Stack:     seat.Stack,
			HasFolded: seat.HasFolded,
			Committed: seat.Committed,
		})
	}
	return players
}

func (s *Session) actPayload(seatIdx, timeMS int) *protocol.Act {
	hand := s.engine.Hand()
	legal, err := s.engine.LegalActions(seatIdx)
	if err != nil {
		s.logger.Error("No legal actions for actor", "seat", seatIdx, "error", err)
		return nil
	}
	seat := s.engine.Seat(seatIdx)

	return &protocol.Act{
		HandID:            hand.HandID,
		Seat:              seatIdx,
		Phase:             hand.Phase.String(),
		Pot:               hand.Pot,
		CurrentBet:        hand.CurrentBet,
		MinRaiseIncrement: hand.MinRaiseIncrement,
		You: protocol.You{
			Hole:      seat.HoleLabels(),
			Stack:     seat.Stack,
			Committed: seat.Committed,
			ToCall:    legal.ToCall,
			TimeMS:    timeMS,
		},
		Table: protocol.Table{
			SB:     s.cfg.SB,
			BB:     s.cfg.BB,
			Seats:  s.cfg.Seats,
			Button: hand.Button,
		},
		Players:    s.playersPayload(),
		Community:  hand.CommunityLabels(),
		Legal:      legal.Strings(),
		CallAmount: legal.CallAmount,
		MinRaiseTo: legal.MinRaiseTo,
		MaxRaiseTo: legal.MaxRaiseTo,
	}
}

func (s *Session) snapshotFor(seatIdx int) protocol.Snapshot {
	hand := s.engine.Hand()
	seat := s.engine.Seat(seatIdx)

	snap := protocol.Snapshot{
		AtHandID:        hand.HandID,
		Phase:           hand.Phase.String(),
		You:             protocol.SnapshotYou{Seat: seatIdx, Hole: seat.HoleLabels(), Stack: seat.Stack},
		Players:         s.playersPayload(),
		Community:       hand.CommunityLabels(),
		TimeMSRemaining: s.remainingMS(),
	}
	legal, err := s.engine.LegalActions(seatIdx)
	if err == nil {
		snap.You.ToCall = legal.ToCall
	}
	if next, ok := s.engine.NextActor(); ok {
		snap.NextActor = &next
		if next == seatIdx && err == nil {
			snap.Legal = legal.Strings()
			snap.CallAmount = legal.CallAmount
			snap.MinRaiseTo = legal.MinRaiseTo
			snap.MaxRaiseTo = legal.MaxRaiseTo
		}
	}
	return snap
}

func (s *Session) spectatorSnapshot() protocol.SpectatorSnapshot {
	snap := protocol.SpectatorSnapshot{Config: s.wireConfig()}
	hand := s.engine.Hand()
	if hand == nil {
		return snap
	}

	sh := &protocol.SpectatorHand{
		HandID:    hand.HandID,
		TableID:   tableID,
		Pot:       hand.Pot,
		Phase:     hand.Phase.String(),
		Community: hand.CommunityLabels(),
		Seats:     []protocol.SpectatorSeat{},
		SB:        s.cfg.SB,
		BB:        s.cfg.BB,
	}
	for _, seat := range s.claimedSeats() {
		sh.Seats = append(sh.Seats, protocol.SpectatorSeat{
			Seat:      seat.Index,
			Team:      seat.Team,
			Stack:     seat.Stack,
			Committed: seat.Committed,
			Hole:      seat.HoleLabels(),
			HasFolded: seat.HasFolded,
			Connected: seat.Connected,
			IsButton:  seat.Index == hand.Button,
		})
	}
	if next, ok := s.engine.NextActor(); ok {
		ms := s.remainingMS()
		sh.NextActor = &next
		sh.TimeRemainingMS = &ms
	}
	snap.Hand = sh
	return snap
}
