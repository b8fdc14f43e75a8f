package correlation

import (
	"sync"
	"time"

	"github.com/viant/flow/internal/clock"
)

// Group represents a rendez-vous for a set of concurrently running tasks.
// The group tracks how many members were expected, how many have already
// settled and the first failure reported.
type Group struct {
	ID       string
	Expected int

	mu        sync.Mutex
	completed int
	failed    int
	firstErr  error
	firstIdx  int
	doneAt    *time.Time
}

// NewGroup creates a group expecting the given number of members.
func NewGroup(id string, expected int) *Group {
	return &Group{ID: id, Expected: expected, firstIdx: -1}
}

// MarkDone registers the settlement of member index and returns true when
// every expected member has settled. Only the first failure is retained.
func (g *Group) MarkDone(index int, err error) (groupComplete bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.failed++
		if g.firstErr == nil {
			g.firstErr = err
			g.firstIdx = index
		}
	}
	g.completed++
	if g.completed >= g.Expected && g.doneAt == nil {
		now := clock.Now()
		g.doneAt = &now
		return true
	}
	return false
}

// Failed returns true when at least one member reported failure.
func (g *Group) Failed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failed > 0
}

// FirstError returns the first failure and the index of the member that
// reported it; index is -1 when no member failed.
func (g *Group) FirstError() (error, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.firstErr, g.firstIdx
}

// Completed returns the number of settled members.
func (g *Group) Completed() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.completed
}

// Done returns whether every member has settled.
func (g *Group) Done() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.doneAt != nil || g.Expected == 0
}
