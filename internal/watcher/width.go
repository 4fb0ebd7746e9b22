// internal/watcher/width.go
package watcher

import (
	"context"

	"github.com/tamzrod/lifelights/internal/dispatch"
	"github.com/tamzrod/lifelights/internal/extract"
	"github.com/tamzrod/lifelights/internal/frame"
	"github.com/tamzrod/lifelights/internal/logger"
	"github.com/tamzrod/lifelights/internal/metrics"
	"github.com/tamzrod/lifelights/internal/payload"
	"github.com/tamzrod/lifelights/internal/status"
	"github.com/tamzrod/lifelights/internal/tracker"
)

// WidthWatcher turns the extent of a colored bar into a debounced percentage.
type WidthWatcher struct {
	core

	extent  *extract.Extent
	tracker *tracker.Tracker
}

func NewWidthWatcher(
	name string,
	extent *extract.Extent,
	tr *tracker.Tracker,
	engine *dispatch.Engine,
	board *status.Board,
	m *metrics.Metrics,
) *WidthWatcher {
	w := &WidthWatcher{
		core:    newCore(name, status.KindWidth, extent.Policy().Name(), engine, board, m),
		extent:  extent,
		tracker: tr,
	}
	w.snap.MaxObserved = tr.MaxExtent()
	w.publish()
	return w
}

// Scan measures the bar in f.
//
// No candidates at all reads as an empty bar. Candidates that all fail the
// size filter leave the previous raw extent in place.
func (w *WidthWatcher) Scan(f *frame.Frame) {
	sel := w.extent.Measure(f, w.tracker.MaxExtent())
	w.scanned()

	switch {
	case sel.Candidates == 0:
		w.tracker.Observe(0)

	default:
		if sel.HasWidest && w.tracker.Ratchet(sel.Widest) {
			logger.Info("watcher", "max %s updated %d", w.name, int(sel.Widest))
			if w.metrics != nil {
				w.metrics.MaxExtent.WithLabelValues(w.name).Set(sel.Widest)
			}
		}
		if sel.HasExtent {
			w.tracker.Observe(sel.Extent)
			w.snap.State = status.StateTracking
		}
	}

	w.snap.Raw = w.tracker.Raw()
	w.snap.MaxObserved = w.tracker.MaxExtent()
	w.publish()
}

// Process evaluates the last scan and dispatches an accepted change.
// The returned error has already been logged.
func (w *WidthWatcher) Process(ctx context.Context) error {
	d := w.tracker.Evaluate()
	if !d.Accept {
		w.suppressed()
		return nil
	}

	if d.Percent == 0 {
		logger.Info("watcher", "%s reached 0.0", w.name)
	} else {
		logger.Info("watcher", "%s updated to %.2f", w.name, d.Percent)
	}

	w.snap.Percent = d.Percent
	w.snap.On = onFlag(d.Percent > 0)
	if w.metrics != nil {
		w.metrics.Percentage.WithLabelValues(w.name).Set(d.Percent)
	}

	return w.dispatch(ctx, payload.Measurement{
		Percent:   d.Percent,
		RawExtent: w.tracker.Raw(),
		On:        w.snap.On,
	})
}

func onFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
