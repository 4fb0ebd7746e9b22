// internal/dispatch/rest/client.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tamzrod/lifelights/internal/logger"
	"github.com/tamzrod/lifelights/internal/payload"
)

// Client sends payloads to one HTTP endpoint.
// POST carries the payload as a JSON body; GET carries it as query parameters.
type Client struct {
	method   string
	endpoint string
	http     *http.Client
}

type Config struct {
	Method   string // POST | GET
	Endpoint string
	Timeout  time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("rest: endpoint required")
	}
	if cfg.Method != http.MethodPost && cfg.Method != http.MethodGet {
		return nil, fmt.Errorf("rest: unsupported method %q", cfg.Method)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{
		method:   cfg.Method,
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Send performs one request. Any non-2xx status is an error.
func (c *Client) Send(ctx context.Context, _ string, p map[string]any) error {
	req, err := c.buildRequest(ctx, p)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rest: %s %s: %w", c.method, c.endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Debug("rest", "response %s (%s %s)", resp.Status, c.method, c.endpoint)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rest: %s %s: unexpected status %s", c.method, c.endpoint, resp.Status)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, p map[string]any) (*http.Request, error) {
	if c.method == http.MethodGet {
		u, err := url.Parse(c.endpoint)
		if err != nil {
			return nil, fmt.Errorf("rest: parse endpoint: %w", err)
		}
		q := u.Query()
		for _, k := range payload.SortedKeys(p) {
			for _, v := range queryValues(p[k]) {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()

		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	}

	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("rest: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// queryValues renders a payload value as one or more query values.
// Lists repeat the key; everything else is formatted with %v.
func queryValues(v any) []string {
	switch t := v.(type) {
	case []int:
		out := make([]string, len(t))
		for i, e := range t {
			out[i] = fmt.Sprint(e)
		}
		return out
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			out[i] = fmt.Sprint(e)
		}
		return out
	case nil:
		return []string{""}
	default:
		return []string{fmt.Sprint(t)}
	}
}
