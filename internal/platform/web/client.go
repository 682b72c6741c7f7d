package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/flappy-ostrich/internal/core"
	"github.com/vovakirdan/flappy-ostrich/internal/engine"
	"github.com/vovakirdan/flappy-ostrich/internal/games/ostrich"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 50
)

// frame is one outgoing WebSocket message.
type frame struct {
	binary bool
	data   []byte
}

// Client is one WebSocket connection playing its own game.
type Client struct {
	id     string
	conn   *websocket.Conn
	engine *engine.Engine
	logger *log.Logger
	send   chan frame

	done      chan struct{}
	closeOnce sync.Once

	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a Client driving eng.
func NewClient(id string, conn *websocket.Conn, eng *engine.Engine, logger *log.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		engine: eng,
		logger: logger,
		send:   make(chan frame, sendBufSize),
		done:   make(chan struct{}),
	}
}

// ID returns the session id.
func (c *Client) ID() string {
	return c.id
}

// Serve runs the engine and both pumps until the connection ends or ctx is
// done. welcome is sent before the first state frame.
func (c *Client) Serve(ctx context.Context, welcome WelcomeMsg) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	snaps := c.engine.Subscribe()
	c.SendJSON(Envelope{T: MsgWelcome, Data: welcome})

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		c.engine.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		c.forward(snaps)
	}()
	go func() {
		defer wg.Done()
		c.WritePump()
	}()

	go func() {
		<-ctx.Done()
		c.close()
	}()

	c.ReadPump()
	cancel()
	c.engine.Stop()
	wg.Wait()
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("ws error", "session", c.id, "error", err)
			}
			return
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			c.logger.Warn("rate limit exceeded, disconnecting", "session", c.id)
			return
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case f := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			kind := websocket.TextMessage
			if f.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, f.data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// forward encodes every published snapshot until the engine stops.
func (c *Client) forward(snaps <-chan ostrich.Snapshot) {
	for snap := range snaps {
		data, err := msgpack.Marshal(NewStateMsg(snap))
		if err != nil {
			c.logger.Error("encode state", "session", c.id, "error", err)
			continue
		}
		c.SendBinary(data)
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("marshal error", "error", err)
		return
	}
	c.enqueue(frame{data: data})
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message
func (c *Client) SendBinary(data []byte) {
	c.enqueue(frame{binary: true, data: data})
}

// enqueue drops the frame when the client is too slow.
func (c *Client) enqueue(f frame) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- f:
	default:
	}
}

// close signals WritePump to send a close frame and drop the connection.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "malformed message"}})
		return
	}

	switch action := core.ParseAction(env.T); action {
	case core.ActionJump, core.ActionPause, core.ActionStart:
		c.engine.Send(engine.Command{Action: action})
	case core.ActionDifficulty:
		var msg DifficultyMsg
		if len(env.D) > 0 {
			if err := json.Unmarshal(env.D, &msg); err != nil {
				c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "bad difficulty"}})
				return
			}
		}
		c.engine.Send(engine.Command{Action: action, Difficulty: msg.Tier})
	default:
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "unknown message type " + env.T}})
	}
}
