package progress

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned when a shared indicator is already owned by another
// flow and the caller asked not to wait.
var ErrBusy = errors.New("progress: indicator is owned by another flow")

// Owner is implemented by indicators that require exclusive ownership for
// the duration of a flow.
type Owner interface {
	Progress
	Acquire(ctx context.Context, wait bool) (*Lease, error)
}

// Shared wraps a process-wide indicator (e.g. a footer spinner) so that at
// most one flow holds it at a time.
type Shared struct {
	target Progress
	sem    *semaphore.Weighted
}

// NewShared wraps target.
func NewShared(target Progress) *Shared {
	return &Shared{target: OrNoop(target), sem: semaphore.NewWeighted(1)}
}

// Acquire takes ownership. With wait set it queues until the current owner
// releases or ctx is done; otherwise it fails fast with ErrBusy.
func (s *Shared) Acquire(ctx context.Context, wait bool) (*Lease, error) {
	if wait {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
	} else if !s.sem.TryAcquire(1) {
		return nil, ErrBusy
	}
	return &Lease{owner: s}, nil
}

// Start, Tick and Stop forward to the wrapped indicator without ownership
// checks; flows go through a Lease instead.
func (s *Shared) Start(total int) { s.target.Start(total) }
func (s *Shared) Tick()           { s.target.Tick() }
func (s *Shared) Stop()           { s.target.Stop() }

// Lease is the exclusive handle held by one flow.
type Lease struct {
	owner *Shared
	once  sync.Once
}

func (l *Lease) Start(total int) { l.owner.target.Start(total) }
func (l *Lease) Tick()           { l.owner.target.Tick() }
func (l *Lease) Stop()           { l.owner.target.Stop() }

// Release returns ownership; further calls are no-ops.
func (l *Lease) Release() {
	l.once.Do(func() { l.owner.sem.Release(1) })
}
