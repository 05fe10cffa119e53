package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/redlight-arcade/internal/core"
	"github.com/vovakirdan/redlight-arcade/internal/games/redlight"
	"github.com/vovakirdan/redlight-arcade/internal/storage"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer  = 64
	inboxBuffer = 32

	// maxFrameGap caps the time one frame may cover after a stall.
	maxFrameGap = 250 * time.Millisecond
)

// Client owns one websocket connection and the session played over it.
//
// readPump and writePump only move bytes. The session, its clock and
// every timer callback live on the run goroutine.
type Client struct {
	conn  *websocket.Conn
	send  chan []byte
	inbox chan ClientMessage
	done  chan struct{}

	clock   *core.ManualClock
	session *redlight.Session
	frame   time.Duration
	store   *storage.Store
	logger  *log.Logger

	last redlight.Snapshot
}

// handle applies one browser command to the session.
func (c *Client) handle(msg ClientMessage) {
	switch msg.Type {
	case MsgPress, MsgRelease:
		d, ok := core.ParseDirection(msg.Key)
		if !ok {
			c.logger.Debug("ignoring key", "key", msg.Key)
			return
		}
		if msg.Type == MsgPress {
			c.session.Press(d)
		} else {
			c.session.Release(d)
		}
	case MsgFreeze:
		c.session.ReleaseAll()
	case MsgStart:
		c.session.Start()
	case MsgRestart:
		c.session.Restart()
	default:
		c.logger.Debug("ignoring message", "type", msg.Type)
	}
}

// step advances the session clock and pushes the result if anything changed.
func (c *Client) step(dt time.Duration) {
	c.clock.Advance(dt)
	c.pushSnapshot(false)
}

// onTransition records finished sessions.
func (c *Client) onTransition(t redlight.Transition) {
	if !t.To.Terminal() {
		return
	}

	outcome := storage.OutcomeLost
	if t.To == redlight.StateWon {
		outcome = storage.OutcomeWon
	}
	elapsed := c.session.PlayTime()
	c.logger.Info("session finished", "outcome", outcome, "reason", t.Reason, "remaining", t.Remaining, "elapsed", elapsed)

	if c.store == nil {
		return
	}
	_, err := c.store.SaveResult(storage.Result{
		GameID:           redlight.GameID,
		Outcome:          outcome,
		Reason:           string(t.Reason),
		SecondsRemaining: t.Remaining,
		ElapsedMs:        elapsed.Milliseconds(),
	})
	if err != nil {
		c.logger.Error("could not save result", "error", err)
	}
}

func (c *Client) pushField() {
	field := c.session.Field()
	c.push(ServerMessage{Type: MsgField, Field: &field})
}

// pushSnapshot sends the session state unless it equals the last one sent.
func (c *Client) pushSnapshot(force bool) {
	snap := c.session.Snapshot()
	if !force && snap == c.last {
		return
	}
	c.last = snap
	c.push(ServerMessage{Type: MsgSnapshot, Snapshot: &snap})
}

// push queues a message without blocking. A slow browser loses frames, not the session.
func (c *Client) push(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to encode message", "type", msg.Type, "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping message", "type", msg.Type)
	}
}

// run drives the session until the context ends or the browser goes away.
func (c *Client) run(ctx context.Context) {
	defer c.shutdown()

	c.pushField()
	c.pushSnapshot(true)

	ticker := time.NewTicker(c.frame)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.inbox:
			if !ok {
				return
			}
			c.handle(msg)
			c.pushSnapshot(false)
		case now := <-ticker.C:
			c.step(frameElapsed(last, now))
			last = now
		}
	}
}

func (c *Client) shutdown() {
	c.session.Close()
	close(c.done)
	close(c.send)
}

// readPump decodes browser commands and hands them to run.
func (c *Client) readPump() {
	defer func() {
		close(c.inbox)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("connection closed", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("malformed message", "error", err)
			continue
		}

		select {
		case c.inbox <- msg:
		case <-c.done:
			return
		}
	}
}

// writePump sends queued messages and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Session is over
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func frameElapsed(prev, now time.Time) time.Duration {
	if now.Before(prev) {
		return 0
	}
	return min(now.Sub(prev), maxFrameGap)
}
