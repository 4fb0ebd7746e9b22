// internal/watcher/watcher.go
package watcher

import (
	"context"
	"time"

	"github.com/tamzrod/lifelights/internal/dispatch"
	"github.com/tamzrod/lifelights/internal/frame"
	"github.com/tamzrod/lifelights/internal/logger"
	"github.com/tamzrod/lifelights/internal/metrics"
	"github.com/tamzrod/lifelights/internal/payload"
	"github.com/tamzrod/lifelights/internal/status"
)

// Watcher is one monitored quantity: its extractor, its tracker state and its targets.
//
// Scan may be called any number of times before Process. Process without an
// intervening Scan re-evaluates the state left by the last Scan.
// A watcher is owned by a single goroutine; nothing in it is shared.
type Watcher interface {
	Name() string
	Scan(f *frame.Frame)
	Process(ctx context.Context) error
	Close() error
}

// core is the dispatch and reporting half shared by both watcher kinds.
type core struct {
	name    string
	engine  *dispatch.Engine
	board   *status.Board
	metrics *metrics.Metrics

	snap status.Snapshot
}

func newCore(name, kind, policy string, engine *dispatch.Engine, board *status.Board, m *metrics.Metrics) core {
	c := core{
		name:    name,
		engine:  engine,
		board:   board,
		metrics: m,
		snap: status.Snapshot{
			Watcher: name,
			Kind:    kind,
			State:   status.StateNoSignal,
			Policy:  policy,
			Health:  status.HealthUnknown,
		},
	}
	c.publish()
	return c
}

func (c *core) Name() string { return c.name }

func (c *core) Close() error { return c.engine.Close() }

func (c *core) scanned() {
	c.snap.Scans++
	if c.metrics != nil {
		c.metrics.Scans.WithLabelValues(c.name).Inc()
	}
}

func (c *core) suppressed() {
	c.snap.Suppressed++
	if c.metrics != nil {
		c.metrics.Suppressed.WithLabelValues(c.name).Inc()
	}
	c.publish()
}

// dispatch runs one cycle and records its outcome.
// A failed cycle is logged here and never rolls back tracker state.
func (c *core) dispatch(ctx context.Context, m payload.Measurement) error {
	err := c.engine.Dispatch(ctx, m)

	c.snap.Dispatches++
	if err != nil {
		c.snap.Health = status.HealthError
		c.snap.Failures++
		c.snap.LastError = err.Error()
		logger.Error("watcher", "dispatch failed (watcher=%s): %v", c.name, err)
	} else {
		c.snap.Health = status.HealthOK
		c.snap.LastError = ""
	}

	if c.metrics != nil {
		c.metrics.DispatchCycles.WithLabelValues(c.name, metrics.Result(err)).Inc()
	}

	c.publish()
	return err
}

func (c *core) publish() {
	c.snap.Updated = time.Now()
	c.board.Put(c.snap)
}

// Snapshot returns a copy of the watcher's observable state.
func (c *core) Snapshot() status.Snapshot { return c.snap }
