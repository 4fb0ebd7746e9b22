// internal/tracker/tracker.go
package tracker

import "math"

// SeedExtent is the initial maximum observed extent.
// Non-zero so the first percentage is defined before any observation.
const SeedExtent = 1.0

// Decision is the outcome of one Evaluate call.
type Decision struct {
	Percent float64 // snapped percentage in [0,1]
	Accept  bool    // true => dispatch
}

// Tracker owns the running baseline and the last accepted percentage
// for one watcher. It performs no I/O and is not safe for concurrent use.
type Tracker struct {
	threshold float64 // fraction, e.g. 0.05 for 5%

	maxExtent   float64
	lastPercent float64
	raw         float64
}

// New creates a tracker for a change threshold expressed in percent.
func New(changeThresholdPercent float64) *Tracker {
	return &Tracker{
		threshold: changeThresholdPercent / 100,
		maxExtent: SeedExtent,
	}
}

// Ratchet raises the maximum observed extent. It never lowers it.
// Reports whether the maximum grew.
func (t *Tracker) Ratchet(extent float64) bool {
	if extent > t.maxExtent {
		t.maxExtent = extent
		return true
	}
	return false
}

// Observe records this cycle's raw extent.
func (t *Tracker) Observe(raw float64) {
	t.raw = raw
}

// Evaluate converts the current raw extent into a percentage and decides
// whether the change is significant. Only an accepted decision mutates the
// last accepted percentage.
func (t *Tracker) Evaluate() Decision {
	percent := Round3(t.raw / t.maxExtent)

	if percent == t.lastPercent {
		return Decision{Percent: percent}
	}

	// Snap to the bounds; upper bound wins when both apply.
	if percent+t.threshold > 1.0 {
		percent = 1.0
	} else if percent-t.threshold < 0.0 {
		percent = 0.0
	}

	if math.Abs(t.lastPercent-percent) < t.threshold {
		return Decision{Percent: percent}
	}

	t.lastPercent = percent
	return Decision{Percent: percent, Accept: true}
}

func (t *Tracker) MaxExtent() float64   { return t.maxExtent }
func (t *Tracker) LastPercent() float64 { return t.lastPercent }
func (t *Tracker) Raw() float64         { return t.raw }

// Threshold is the binary on/off decision used by brightness watchers.
// There is no hysteresis band.
func Threshold(value, minThreshold float64) int {
	if value >= minThreshold {
		return 1
	}
	return 0
}

// Round3 rounds to three decimal places, halves away from zero.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
