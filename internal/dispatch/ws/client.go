// internal/dispatch/ws/client.go
package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tamzrod/lifelights/internal/logger"
)

// Envelope is the JSON frame written for every send.
type Envelope struct {
	Address string         `json:"address"`
	Payload map[string]any `json:"payload"`
}

// Client pushes payloads over one persistent WebSocket connection.
// The connection is dialed on first Send. A failed write drops it;
// the next Send dials again.
type Client struct {
	url     string
	timeout time.Duration
	dialer  *websocket.Dialer

	conn *websocket.Conn
}

type Config struct {
	URL     string // ws:// or wss://
	Timeout time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("ws: url required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{
		url:     cfg.URL,
		timeout: cfg.Timeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.Timeout,
		},
	}, nil
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(c.timeout),
	)
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) Send(ctx context.Context, address string, payload map[string]any) error {
	if c.conn == nil {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			return fmt.Errorf("ws: dial %s: %w", c.url, err)
		}
		c.conn = conn
		logger.Info("ws", "connected to %s", c.url)
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if err := c.conn.WriteJSON(Envelope{Address: address, Payload: payload}); err != nil {
		_ = c.conn.Close()
		c.conn = nil
		return fmt.Errorf("ws: write %s: %w", c.url, err)
	}
	return nil
}
