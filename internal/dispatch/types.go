// internal/dispatch/types.go
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedMethod is returned for a request method no sender implements.
var ErrUnsupportedMethod = errors.New("dispatch: unsupported method")

// Sender is the uniform send contract every target transport implements.
// address is the watcher's message address ("/" + name); transports that
// have no notion of an address ignore it.
type Sender interface {
	Send(ctx context.Context, address string, payload map[string]any) error
	Close() error
}

// Target is one configured notification sink with its own transport state.
type Target struct {
	Method   string
	Endpoint string
	Delay    time.Duration
	Template map[string]any // never mutated
	Sender   Sender
}

// Plan is the ordered target list for one watcher.
type Plan struct {
	Watcher string
	Targets []Target
}

// Address is the message address used for this plan's watcher.
func (p Plan) Address() string { return "/" + p.Watcher }

// TargetError reports which target aborted a dispatch cycle.
type TargetError struct {
	Index    int
	Method   string
	Endpoint string
	Err      error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("request %d (%s %s): %v", e.Index, e.Method, e.Endpoint, e.Err)
}

func (e *TargetError) Unwrap() error { return e.Err }
