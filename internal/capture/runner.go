// internal/capture/runner.go
package capture

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits one Result per tick on out.
// A single goroutine. No overlap: a tick is dropped while the consumer is busy.
// Returns when ctx is cancelled.
func (c *Capturer) Run(ctx context.Context, out chan<- Result) {
	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case out <- c.CaptureOnce():
			case <-ctx.Done():
				return
			}
		}
	}
}
