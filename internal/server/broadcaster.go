package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerarena/internal/protocol"
)

// pacedBuffer is the per-spectator queue depth in presentation mode. A
// spectator this far behind the table is dropped.
const pacedBuffer = 512

// pacedFrame is one queued presentation frame. Event frames carry the
// inter-event delay; everything else releases immediately behind
// whatever precedes it, so per-recipient order always matches
// production order. A nil data slice tells the pump to close politely.
type pacedFrame struct {
	data  []byte
	delay bool
}

// Broadcaster fans frames out to the table's audiences: bots get the
// bot dialect, spectators and operators get the spectator/ dialect, and
// presentation-mode spectators get theirs through a paced per-recipient
// queue. Apart from the paced pump goroutines everything here runs on
// the session goroutine, so the audience maps need no lock.
type Broadcaster struct {
	codec   *protocol.Codec
	clock   quartz.Clock
	delay   time.Duration
	metrics *Metrics
	logger  *log.Logger

	players   map[*Conn]bool
	live      map[*Conn]bool
	operators map[*Conn]bool
	paced     map[*Conn]chan pacedFrame
	pumps     sync.WaitGroup
}

// NewBroadcaster creates a broadcaster pacing presentation delivery by
// delay on the given clock.
func NewBroadcaster(codec *protocol.Codec, clock quartz.Clock, delay time.Duration, metrics *Metrics, logger *log.Logger) *Broadcaster {
	return &Broadcaster{
		codec:     codec,
		clock:     clock,
		delay:     delay,
		metrics:   metrics,
		logger:    logger.WithPrefix("broadcast"),
		players:   make(map[*Conn]bool),
		live:      make(map[*Conn]bool),
		operators: make(map[*Conn]bool),
		paced:     make(map[*Conn]chan pacedFrame),
	}
}

// AddPlayer registers a bot connection for the bot dialect.
func (b *Broadcaster) AddPlayer(c *Conn) {
	b.players[c] = true
	b.metrics.ConnectedBots.Inc()
}

// AddSpectator registers a spectator. Paced spectators get a dedicated
// queue and pump; live ones are written synchronously with the bots.
func (b *Broadcaster) AddSpectator(c *Conn, paced bool) {
	if paced {
		feed := make(chan pacedFrame, pacedBuffer)
		b.paced[c] = feed
		b.pumps.Add(1)
		go b.pacedLoop(c, feed)
	} else {
		b.live[c] = true
	}
	b.metrics.ConnectedSpectators.Inc()
}

// AddOperator registers an operator connection. Operators ride the live
// spectator feed and additionally receive status advisories; they are
// never paced.
func (b *Broadcaster) AddOperator(c *Conn) {
	b.live[c] = true
	b.operators[c] = true
	b.metrics.ConnectedSpectators.Inc()
}

// Remove drops a connection from every audience. Safe for connections
// that were never added.
func (b *Broadcaster) Remove(c *Conn) {
	if b.players[c] {
		delete(b.players, c)
		b.metrics.ConnectedBots.Dec()
	}
	if b.live[c] {
		delete(b.live, c)
		delete(b.operators, c)
		b.metrics.ConnectedSpectators.Dec()
	}
	if feed, ok := b.paced[c]; ok {
		delete(b.paced, c)
		close(feed)
		b.metrics.ConnectedSpectators.Dec()
	}
}

// Send encodes and queues one frame for a single connection.
func (b *Broadcaster) Send(c *Conn, typ string, payload any) bool {
	data, err := b.codec.Encode(typ, payload)
	if err != nil {
		b.logger.Error("Failed to encode frame", "type", typ, "error", err)
		return false
	}
	return c.Send(data)
}

// Players sends a frame to every bot connection.
func (b *Broadcaster) Players(typ string, payload any) {
	if len(b.players) == 0 {
		return
	}
	data, err := b.codec.Encode(typ, payload)
	if err != nil {
		b.logger.Error("Failed to encode frame", "type", typ, "error", err)
		return
	}
	for c := range b.players {
		c.Send(data)
	}
}

// Public sends a frame to everyone: bots under typ, spectators and
// operators under the spectator/ mirror of typ. Only event frames incur
// the presentation delay.
func (b *Broadcaster) Public(typ string, payload any) {
	b.Players(typ, payload)
	b.Spectators(protocol.SpectatorPrefix+typ, payload, typ == protocol.TypeEvent)
}

// Spectators sends a spectator-dialect frame to every spectator and
// operator. Paced recipients get it through their queue, with the
// inter-event delay when delay is set.
func (b *Broadcaster) Spectators(typ string, payload any, delay bool) {
	if len(b.live) == 0 && len(b.paced) == 0 {
		return
	}
	data, err := b.codec.Encode(typ, payload)
	if err != nil {
		b.logger.Error("Failed to encode frame", "type", typ, "error", err)
		return
	}
	for c := range b.live {
		c.Send(data)
	}
	for c, feed := range b.paced {
		b.enqueue(c, feed, pacedFrame{data: data, delay: delay})
	}
}

// Status sends a status advisory to operator connections only.
func (b *Broadcaster) Status(payload any) {
	if len(b.operators) == 0 {
		return
	}
	data, err := b.codec.Encode(protocol.TypeSpectatorStatus, payload)
	if err != nil {
		b.logger.Error("Failed to encode frame", "type", protocol.TypeSpectatorStatus, "error", err)
		return
	}
	for c := range b.operators {
		c.Send(data)
	}
}

// Shutdown closes every audience connection politely, letting queued
// frames flush first. Paced queues get a close sentinel so their pumps
// finish delivering before the socket closes; Wait blocks until all of
// that has happened.
func (b *Broadcaster) Shutdown() {
	for c := range b.players {
		c.Shutdown()
	}
	for c := range b.live {
		c.Shutdown()
	}
	for c, feed := range b.paced {
		b.enqueue(c, feed, pacedFrame{})
	}
}

// Wait blocks until every paced pump has drained and every audience
// connection has flushed its final frames.
func (b *Broadcaster) Wait() {
	b.pumps.Wait()
	for c := range b.players {
		<-c.Done()
	}
	for c := range b.live {
		<-c.Done()
	}
	for c := range b.paced {
		<-c.Done()
	}
}

func (b *Broadcaster) enqueue(c *Conn, feed chan pacedFrame, f pacedFrame) {
	select {
	case feed <- f:
	default:
		b.logger.Warn("Presentation queue overflow, dropping spectator", "conn", c.ID())
		c.Close()
	}
}

// pacedLoop delivers one spectator's queue in order, sleeping the
// configured delay ahead of each event frame.
func (b *Broadcaster) pacedLoop(c *Conn, feed <-chan pacedFrame) {
	defer b.pumps.Done()
	for f := range feed {
		if f.delay && b.delay > 0 {
			timer := b.clock.NewTimer(b.delay)
			select {
			case <-timer.C:
			case <-c.Closed():
				timer.Stop()
				return
			}
		}
		if f.data == nil {
			c.Shutdown()
			return
		}
		if !c.Send(f.data) {
			return
		}
	}
}
