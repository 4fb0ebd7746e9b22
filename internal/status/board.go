// internal/status/board.go
package status

import (
	"sort"
	"sync"
)

// Board holds the latest snapshot per watcher.
// It is the only structure shared between the driving loop and readers.
type Board struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

func NewBoard() *Board {
	return &Board{snaps: make(map[string]Snapshot)}
}

// Put replaces the snapshot for s.Watcher. A nil board is a no-op.
func (b *Board) Put(s Snapshot) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.snaps[s.Watcher] = s
	b.mu.Unlock()
}

func (b *Board) Get(name string) (Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.snaps[name]
	return s, ok
}

// All returns every snapshot ordered by watcher name.
func (b *Board) All() []Snapshot {
	b.mu.RLock()
	out := make([]Snapshot, 0, len(b.snaps))
	for _, s := range b.snaps {
		out = append(out, s)
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Watcher < out[j].Watcher })
	return out
}

// Healthy reports false if any watcher's last dispatch cycle failed.
func (b *Board) Healthy() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.snaps {
		if s.Health == HealthError {
			return false
		}
	}
	return true
}
