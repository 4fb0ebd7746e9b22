// internal/dispatch/osc/client.go
package osc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/tamzrod/lifelights/internal/logger"
)

// OSC 1.0 client over UDP (1 payload = 1 datagram).
// The socket is opened on first Send and reused for the client's lifetime.
type Client struct {
	addr    string
	timeout time.Duration
	dial    func(network, address string, timeout time.Duration) (net.Conn, error)

	conn net.Conn
}

type Config struct {
	Host    string
	Port    int
	Timeout time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("osc: host required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("osc: invalid port %d", cfg.Port)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{
		addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		timeout: cfg.Timeout,
		dial:    net.DialTimeout,
	}, nil
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Send encodes the payload as one OSC message addressed to address
// and writes it as a single datagram.
func (c *Client) Send(_ context.Context, address string, payload map[string]any) error {
	args, err := Flatten(payload)
	if err != nil {
		return err
	}
	pkt, err := EncodeMessage(address, args)
	if err != nil {
		return err
	}

	if c.conn == nil {
		conn, err := c.dial("udp", c.addr, c.timeout)
		if err != nil {
			return fmt.Errorf("osc: dial %s: %w", c.addr, err)
		}
		c.conn = conn
		logger.Info("osc", "started OSC client streaming to %s", c.addr)
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if err := writeAll(c.conn, pkt); err != nil {
		return fmt.Errorf("osc: write %s: %w", c.addr, err)
	}
	return nil
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
