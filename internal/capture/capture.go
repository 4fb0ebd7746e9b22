// internal/capture/capture.go
package capture

import (
	"errors"
	"time"

	"github.com/tamzrod/lifelights/internal/frame"
)

// Config is the minimal runtime config the capturer needs.
type Config struct {
	Interval time.Duration
}

// Result is one capture cycle.
// Frame is nil when nothing usable was available; the caller skips the cycle.
type Result struct {
	At    time.Time
	Frame *frame.Frame
	Err   error
}

// Skip reports whether this cycle carries nothing to scan.
func (r Result) Skip() bool { return r.Frame == nil }

// Capturer is a dumb, clock-driven frame source.
type Capturer struct {
	cfg      Config
	provider frame.Provider
}

// New creates a capturer with immutable config.
func New(cfg Config, provider frame.Provider) (*Capturer, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("capture: interval must be > 0")
	}
	if provider == nil {
		return nil, errors.New("capture: frame provider required")
	}
	return &Capturer{cfg: cfg, provider: provider}, nil
}

// CaptureOnce performs exactly one acquisition.
// Not-ready, empty (all-black) and failed acquisitions all yield a nil frame.
func (c *Capturer) CaptureOnce() Result {
	res := Result{At: time.Now()}

	f, err := c.provider.Acquire()
	if err != nil {
		res.Err = err
		return res
	}
	if f.Empty() {
		return res
	}

	res.Frame = f
	return res
}
