// internal/watcher/cd.go
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

// CDWatcher reports whether a fixed region is lit, every cycle.
// There is no hysteresis: each Process dispatches the current on/off flag.
type CDWatcher struct {
	core

	brightness   *extract.Brightness
	minThreshold float64

	current       float64
	maxBrightness float64
}

func NewCDWatcher(
	name string,
	b *extract.Brightness,
	minThreshold float64,
	engine *dispatch.Engine,
	board *status.Board,
	m *metrics.Metrics,
) *CDWatcher {
	return &CDWatcher{
		core:         newCore(name, status.KindCD, "", engine, board, m),
		brightness:   b,
		minThreshold: minThreshold,
	}
}

func (w *CDWatcher) Scan(f *frame.Frame) {
	w.current = w.brightness.Measure(f)
	w.scanned()

	// reported only; the on/off decision never looks at it
	if w.current > w.maxBrightness {
		w.maxBrightness = w.current
		logger.Debug("watcher", "max %s updated %.1f", w.name, w.maxBrightness)
	}

	if w.metrics != nil {
		w.metrics.Brightness.WithLabelValues(w.name).Set(w.current)
	}

	w.snap.State = status.StateTracking
	w.snap.Raw = w.current
	w.snap.MaxObserved = w.maxBrightness
	w.publish()
}

// Process dispatches the on/off flag for the last scan.
// The returned error has already been logged.
func (w *CDWatcher) Process(ctx context.Context) error {
	on := tracker.Threshold(w.current, w.minThreshold)

	w.snap.On = on
	w.snap.Percent = float64(on)

	return w.dispatch(ctx, payload.Measurement{
		Percent:   float64(on),
		RawExtent: w.current,
		On:        on,
	})
}
