// internal/dispatch/dispatch.go
package dispatch

import (
	"context"
	"time"

	"github.com/tamzrod/lifelights/internal/metrics"
	"github.com/tamzrod/lifelights/internal/payload"
)

// Engine fans one accepted measurement out to a watcher's targets, in order.
type Engine struct {
	plan    Plan
	metrics *metrics.Metrics
	sleep   func(ctx context.Context, d time.Duration)
}

// Option customises an Engine.
type Option func(*Engine)

// WithMetrics records per-target send outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithSleep replaces the inter-target delay (tests).
func WithSleep(fn func(ctx context.Context, d time.Duration)) Option {
	return func(e *Engine) { e.sleep = fn }
}

func New(plan Plan, opts ...Option) *Engine {
	e := &Engine{plan: plan, sleep: sleepCtx}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Plan() Plan { return e.plan }

// Dispatch runs one dispatch cycle.
//
// Each target gets a freshly resolved payload. The target's delay is always
// served after its send, successful or not. The first failed send aborts the
// rest of the cycle and is returned as a *TargetError.
func (e *Engine) Dispatch(ctx context.Context, m payload.Measurement) error {
	address := e.plan.Address()

	for i, t := range e.plan.Targets {
		body := payload.Resolve(t.Template, m)

		err := t.Sender.Send(ctx, address, body)
		if e.metrics != nil {
			e.metrics.TargetSends.WithLabelValues(e.plan.Watcher, t.Method, metrics.Result(err)).Inc()
		}

		e.sleep(ctx, t.Delay)

		if err != nil {
			return &TargetError{Index: i, Method: t.Method, Endpoint: t.Endpoint, Err: err}
		}

		// Shutdown only; a running cycle is otherwise never cut short.
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}

// Close releases every target's transport.
func (e *Engine) Close() error {
	var last error
	for _, t := range e.plan.Targets {
		if err := t.Sender.Close(); err != nil {
			last = err
		}
	}
	return last
}

// sleepCtx blocks for d, returning early only if ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
