// internal/dispatch/modbus/client.go
package modbus

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/lifelights/internal/logger"
	"github.com/tamzrod/lifelights/internal/payload"
)

// Client writes payload values into holding registers on one Modbus TCP endpoint.
// The TCP connection is opened on first Send and reused while healthy.
// On any write failure the handler is discarded and a future Send reconnects.
type Client struct {
	cfg Config

	handler *modbus.TCPClientHandler
	client  modbus.Client
}

type Config struct {
	Endpoint string // host:port
	UnitID   uint8
	Address  uint16 // first holding register
	Timeout  time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("dispatch modbus: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{cfg: cfg}, nil
}

func (c *Client) Close() error {
	if c.handler == nil {
		return nil
	}
	err := c.handler.Close()
	c.handler, c.client = nil, nil
	return err
}

// Send writes every payload value, in key order, as consecutive registers.
func (c *Client) Send(_ context.Context, _ string, p map[string]any) error {
	regs, err := Registers(p)
	if err != nil {
		return err
	}
	if len(regs) == 0 {
		return nil
	}

	if c.client == nil {
		h := modbus.NewTCPClientHandler(c.cfg.Endpoint)
		h.Timeout = c.cfg.Timeout
		h.SlaveId = c.cfg.UnitID

		if err := h.Connect(); err != nil {
			return fmt.Errorf("dispatch modbus: connect %s: %w", c.cfg.Endpoint, err)
		}
		c.handler = h
		c.client = modbus.NewClient(h)
		logger.Info("modbus", "connected to %s (unit=%d)", c.cfg.Endpoint, c.cfg.UnitID)
	}

	if _, err := c.client.WriteMultipleRegisters(c.cfg.Address, uint16(len(regs)), packRegisters(regs)); err != nil {
		_ = c.Close()
		return fmt.Errorf("dispatch modbus: ep=%s unit=%d addr=%d: %w", c.cfg.Endpoint, c.cfg.UnitID, c.cfg.Address, err)
	}
	return nil
}

// Registers converts a payload into register values: keys sorted, lists
// flattened, numbers rounded and clamped to 0..65535, booleans as 0/1.
func Registers(p map[string]any) ([]uint16, error) {
	var out []uint16
	for _, k := range payload.SortedKeys(p) {
		var err error
		out, err = appendRegisters(out, p[k])
		if err != nil {
			return nil, fmt.Errorf("dispatch modbus: payload %q: %w", k, err)
		}
	}
	return out, nil
}

func appendRegisters(out []uint16, v any) ([]uint16, error) {
	switch t := v.(type) {
	case int:
		return append(out, clamp(float64(t))), nil
	case int64:
		return append(out, clamp(float64(t))), nil
	case float64:
		return append(out, clamp(t)), nil
	case bool:
		if t {
			return append(out, 1), nil
		}
		return append(out, 0), nil
	case []int:
		for _, e := range t {
			out = append(out, clamp(float64(e)))
		}
		return out, nil
	case []any:
		for _, e := range t {
			var err error
			if out, err = appendRegisters(out, e); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value of type %T is not register-encodable", v)
	}
}

func clamp(f float64) uint16 {
	f = math.Round(f)
	if f < 0 {
		return 0
	}
	if f > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(f)
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
