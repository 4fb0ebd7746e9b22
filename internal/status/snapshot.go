// internal/status/snapshot.go
package status

import "time"

// Snapshot is a copy of one watcher's observable state.
// It is produced by the watcher and never written back into it.
type Snapshot struct {
	Watcher string    `json:"watcher"`
	Kind    string    `json:"kind"`
	State   string    `json:"state"`
	Policy  string    `json:"policy,omitempty"`
	Updated time.Time `json:"updated"`

	Raw         float64 `json:"raw"`
	MaxObserved float64 `json:"max_observed"`
	Percent     float64 `json:"percent"`
	On          int     `json:"on"`

	Health     uint16 `json:"health"`
	Scans      uint64 `json:"scans"`
	Dispatches uint64 `json:"dispatches"`
	Suppressed uint64 `json:"suppressed"`
	Failures   uint64 `json:"failures"`
	LastError  string `json:"last_error,omitempty"`
}
