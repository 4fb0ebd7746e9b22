// internal/dispatch/builder.go
package dispatch

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	cfg "github.com/tamzrod/lifelights/internal/config"
	dmodbus "github.com/tamzrod/lifelights/internal/dispatch/modbus"
	"github.com/tamzrod/lifelights/internal/dispatch/osc"
	"github.com/tamzrod/lifelights/internal/dispatch/rest"
	"github.com/tamzrod/lifelights/internal/dispatch/ws"
)

// BuildPlan converts one watcher's request list into a dispatch Plan.
// Assumes config has already passed validation and normalization.
//
// Every request gets its own sender, even when endpoints coincide:
// connection state is never shared across targets or watchers.
// Connections are opened lazily on first send, not here.
func BuildPlan(watcher string, reqs []cfg.RequestConfig) (Plan, error) {
	if watcher == "" {
		return Plan{}, errors.New("dispatch: watcher name required")
	}

	plan := Plan{Watcher: watcher}

	for i, r := range reqs {
		s, err := NewSender(r)
		if err != nil {
			for _, t := range plan.Targets {
				_ = t.Sender.Close()
			}
			return Plan{}, fmt.Errorf("watcher %q: request %d: %w", watcher, i, err)
		}

		plan.Targets = append(plan.Targets, Target{
			Method:   r.Method,
			Endpoint: r.Endpoint,
			Delay:    seconds(r.Delay),
			Template: r.Payloads,
			Sender:   s,
		})
	}

	return plan, nil
}

// NewSender creates the transport for one request.
func NewSender(r cfg.RequestConfig) (Sender, error) {
	timeout := time.Duration(r.TimeoutMs) * time.Millisecond

	switch r.Method {
	case cfg.MethodPost, cfg.MethodGet:
		return rest.New(rest.Config{
			Method:   r.Method,
			Endpoint: r.Endpoint,
			Timeout:  timeout,
		})

	case cfg.MethodStream:
		return osc.New(osc.Config{
			Host:    r.Endpoint,
			Port:    r.Port,
			Timeout: timeout,
		})

	case cfg.MethodWS:
		return ws.New(ws.Config{
			URL:     r.Endpoint,
			Timeout: timeout,
		})

	case cfg.MethodModbus:
		return dmodbus.New(dmodbus.Config{
			Endpoint: hostPort(r.Endpoint, r.Port),
			UnitID:   r.UnitID,
			Address:  r.Address,
			Timeout:  timeout,
		})

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, r.Method)
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// hostPort joins endpoint and port unless the endpoint already carries one.
func hostPort(endpoint string, port int) string {
	if port <= 0 {
		return endpoint
	}
	if _, _, err := net.SplitHostPort(endpoint); err == nil {
		return endpoint
	}
	return net.JoinHostPort(endpoint, strconv.Itoa(port))
}
