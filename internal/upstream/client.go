// Package upstream maintains the host websocket to the quiz server. The
// connection is dialed once; when it drops the client reports the loss and
// stays closed. There is no reconnect.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quiz-screen/internal/protocol"
)

// ErrClosed is returned by Send after the socket has been lost.
var ErrClosed = errors.New("upstream: connection closed")

// FrameFunc receives each raw inbound frame.
type FrameFunc func(frame []byte)

// CloseFunc is called once when the read loop terminates.
type CloseFunc func(err error)

type Client struct {
	log     *zap.Logger
	conn    *websocket.Conn
	writeMu sync.Mutex
	open    atomic.Bool
	onFrame FrameFunc
	onClose CloseFunc
}

// Dial connects the host socket and starts the read loop.
func Dial(ctx context.Context, url string, log *zap.Logger, onFrame FrameFunc, onClose CloseFunc) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return nil, err
	}
	c := &Client{
		log:     log,
		conn:    conn,
		onFrame: onFrame,
		onClose: onClose,
	}
	c.open.Store(true)
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			c.open.Store(false)
			c.log.Warn("host socket read failed", zap.Error(err))
			if c.onClose != nil {
				c.onClose(err)
			}
			return
		}
		c.onFrame(frame)
	}
}

// Send writes a host command. Writes are serialized; gorilla connections
// allow only one concurrent writer.
func (c *Client) Send(cmd protocol.Command) error {
	if !c.open.Load() {
		return ErrClosed
	}
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Open reports whether the socket is still alive.
func (c *Client) Open() bool {
	return c.open.Load()
}

func (c *Client) Close() error {
	c.open.Store(false)
	return c.conn.Close()
}
