// internal/status/constants.go
package status

// ---- WATCHER KINDS ----

const (
	KindWidth = "width"
	KindCD    = "cd"
)

// ---- TRACKING STATES ----
// Observational only: nothing blocks scanning or processing in either state.

// StateNoSignal means no qualifying measurement has been seen yet.
const StateNoSignal = "NO_SIGNAL"

// StateTracking means at least one qualifying measurement has been seen.
const StateTracking = "TRACKING"

// ---- HEALTH CODES (last dispatch cycle) ----

// HealthUnknown represents a watcher that has not dispatched yet.
const HealthUnknown uint16 = 0

// HealthOK represents a watcher whose last dispatch cycle completed.
const HealthOK uint16 = 1

// HealthError represents a watcher whose last dispatch cycle aborted.
const HealthError uint16 = 2

// HealthName returns the display name of a health code.
func HealthName(h uint16) string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	default:
		return "unknown"
	}
}
