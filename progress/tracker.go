package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/viant/flow/internal/clock"
)

// BracketError reports a violation of the start/stop discipline. It signals
// an engine defect rather than a recoverable condition, therefore Tracker
// panics with it.
type BracketError struct {
	Op     string
	Starts int
	Stops  int
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("progress: invalid %s (starts=%d, stops=%d)", e.Op, e.Starts, e.Stops)
}

// Snapshot is a value copy of the Tracker counters.
type Snapshot struct {
	Total     int
	Ticks     int
	Starts    int
	Stops     int
	Running   bool
	StartedAt time.Time
	StoppedAt time.Time
}

// Tracker keeps aggregated counters for a flow execution. It is safe for
// concurrent use.
type Tracker struct {
	mu       sync.Mutex
	state    Snapshot
	onChange func(Snapshot)
}

// NewTracker creates a tracker; onChange (optional) is invoked with a copy
// of the counters after every update.
func NewTracker(onChange func(Snapshot)) *Tracker {
	return &Tracker{onChange: onChange}
}

// Start opens the bracket. Starting a running tracker panics.
func (t *Tracker) Start(total int) {
	t.update(func(s *Snapshot) *BracketError {
		if s.Running {
			return &BracketError{Op: "start", Starts: s.Starts, Stops: s.Stops}
		}
		s.Running = true
		s.Starts++
		s.Total = total
		s.Ticks = 0
		s.StartedAt = clock.Now()
		return nil
	})
}

// Tick records one completed step.
func (t *Tracker) Tick() {
	t.update(func(s *Snapshot) *BracketError {
		s.Ticks++
		return nil
	})
}

// Stop closes the bracket. Stopping a tracker that is not running panics.
func (t *Tracker) Stop() {
	t.update(func(s *Snapshot) *BracketError {
		if !s.Running {
			return &BracketError{Op: "stop", Starts: s.Starts, Stops: s.Stops}
		}
		s.Running = false
		s.Stops++
		s.StoppedAt = clock.Now()
		return nil
	})
}

// Snapshot returns a copy of the counters.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// OnChange replaces the change callback; nil disables it.
func (t *Tracker) OnChange(cb func(Snapshot)) {
	t.mu.Lock()
	t.onChange = cb
	t.mu.Unlock()
}

// update applies fn under the lock. The callback and any bracket panic happen
// after the lock is released, so the tracker stays usable once a violation
// has been recovered.
func (t *Tracker) update(fn func(s *Snapshot) *BracketError) {
	t.mu.Lock()
	violation := fn(&t.state)
	snapshot := t.state
	cb := t.onChange
	t.mu.Unlock()
	if violation != nil {
		panic(violation)
	}
	if cb != nil {
		cb(snapshot)
	}
}
