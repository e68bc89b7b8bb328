// Package bridge talks to the native backend process over a websocket.
//
// Requests are JSON envelopes {"id", "method", "params"} answered by
// {"id", "result"} or {"id", "error"}. Envelopes carrying an "event" name
// instead of an id are pushed by the backend and delivered on Events.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/assetview/internal/logger"
)

// ErrClosed is returned by calls pending or issued after the connection ends.
var ErrClosed = errors.New("bridge closed")

// RemoteError is an error reported by the backend for one call.
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend %s: %s", e.Method, e.Message)
}

type request struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type envelope struct {
	ID      uint64          `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client is a connection to the backend. Call is safe for concurrent use.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[uint64]chan envelope
	nextID  uint64
	closed  bool

	events chan Event
	done   chan struct{}
	log    *zap.Logger
}

// Dial connects to the backend at url (ws:// or wss://).
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	c := &Client{
		conn:    conn,
		pending: make(map[uint64]chan envelope),
		events:  make(chan Event, 64),
		done:    make(chan struct{}),
		log:     logger.Named("bridge"),
	}
	go c.listen()
	return c, nil
}

// Events delivers backend-pushed events. It is closed when the connection
// ends. Events are dropped if nobody drains the channel.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Call sends a request and decodes the response into result (which may be
// nil to discard it).
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.nextID++
	id := c.nextID
	reply := make(chan envelope, 1)
	c.pending[id] = reply
	c.mu.Unlock()

	defer c.forget(id)

	c.writeMu.Lock()
	err := c.conn.WriteJSON(request{ID: id, Method: method, Params: params})
	c.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("sending %s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	case env := <-reply:
		if env.Error != "" {
			return &RemoteError{Method: method, Message: env.Error}
		}
		if result == nil || len(env.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Result, result); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
		return nil
	}
}

// Close ends the connection.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}

func (c *Client) forget(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) listen() {
	defer c.shutdown()
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				c.log.Warn("read failed", zap.Error(err))
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			c.log.Warn("malformed envelope", zap.ByteString("msg", msg), zap.Error(err))
			continue
		}

		switch {
		case env.Event != "":
			select {
			case c.events <- Event{Name: env.Event, Payload: env.Payload}:
			default:
				c.log.Warn("event dropped", zap.String("event", env.Event))
			}
		case env.ID != 0:
			c.mu.Lock()
			reply, ok := c.pending[env.ID]
			delete(c.pending, env.ID)
			c.mu.Unlock()
			if !ok {
				c.log.Debug("reply for unknown request", zap.Uint64("id", env.ID))
				continue
			}
			select {
			case reply <- env:
			default:
				c.log.Warn("duplicate reply", zap.Uint64("id", env.ID))
			}
		default:
			c.log.Warn("envelope without id or event", zap.ByteString("msg", msg))
		}
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	close(c.done)
	close(c.events)
}
