package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Close code sent to a connection replaced by a fresh claim for the
	// same seat.
	closeReplaced = 4000
)

var connSerial atomic.Int64

// Conn wraps one WebSocket connection. It knows nothing about seats or
// roles; the session decides what a connection is after its hello. Frames
// read from the socket are posted to the session as intents, and outbound
// frames pass through a buffered send channel drained by the write pump.
type Conn struct {
	id     int64
	ws     *websocket.Conn
	send   chan []byte
	logger *log.Logger

	closeOnce sync.Once
	closed    chan struct{}
	done      chan struct{}
}

func newConn(ws *websocket.Conn, logger *log.Logger) *Conn {
	id := connSerial.Add(1)
	return &Conn{
		id:     id,
		ws:     ws,
		send:   make(chan []byte, 256),
		logger: logger.WithPrefix("conn").With("conn", id),
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// ID returns the connection's process-unique identifier.
func (c *Conn) ID() int64 {
	return c.id
}

// Closed returns a channel that closes when the connection is torn down.
func (c *Conn) Closed() <-chan struct{} {
	return c.closed
}

// Done returns a channel that closes once the write pump has exited,
// meaning every queued frame has been written or abandoned. Used to
// drain final frames before the process exits.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Send queues one encoded frame without blocking. A full buffer means the
// peer has stopped reading; the connection is closed rather than letting
// it stall the table.
func (c *Conn) Send(frame []byte) bool {
	select {
	case <-c.closed:
		return false
	default:
	}

	select {
	case c.send <- frame:
		return true
	default:
		c.logger.Warn("Send buffer full, closing connection")
		c.Close()
		return false
	}
}

// Shutdown queues a polite close behind any pending frames, so everything
// already sent is flushed before the close frame goes out.
func (c *Conn) Shutdown() {
	select {
	case <-c.closed:
	case c.send <- nil:
	default:
		c.Close()
	}
}

// Close tears the connection down immediately. Safe to call from any
// goroutine, any number of times.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.ws.Close()
	})
}

// CloseWithCode sends a close frame with the given code before tearing
// the connection down. Used when a seat claim replaces a live connection.
func (c *Conn) CloseWithCode(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	c.Close()
}

// readPump reads frames off the socket and posts them to the session. It
// posts exactly one connClosed when the socket dies, which is the only
// path by which the session learns of a disconnect.
func (c *Conn) readPump(post func(intent)) {
	defer func() {
		c.Close()
		post(connClosed{conn: c})
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Debug("WebSocket read error", "error", err)
			}
			return
		}
		post(frameIntent{conn: c, data: data})
	}
}

// writePump drains the send channel onto the socket and keeps the peer
// alive with pings. A nil frame is the polite-close sentinel queued by
// Shutdown.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
		close(c.done)
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if frame == nil {
				_ = c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug("WebSocket write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.closed:
			return
		}
	}
}
