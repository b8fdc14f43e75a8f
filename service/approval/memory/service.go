package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/flow/internal/clock"
	"github.com/viant/flow/internal/idgen"
	"github.com/viant/flow/service/approval"
	"github.com/viant/flow/service/messaging"
	qmem "github.com/viant/flow/service/messaging/memory"
)

type entry struct {
	request  *approval.Request
	decision *approval.Decision
	decided  chan struct{}
}

type service struct {
	mux     sync.Mutex
	entries map[string]*entry
	events  messaging.Queue[approval.Event]
}

// New creates an in-memory approval service.
func New(options ...Option) approval.Service {
	ret := &service{entries: map[string]*entry{}}
	for _, option := range options {
		option(ret)
	}
	if ret.events == nil {
		config := qmem.DefaultConfig()
		config.DropWhenFull = true
		ret.events = qmem.NewQueue[approval.Event](config)
	}
	return ret
}

func (s *service) RequestApproval(ctx context.Context, r *approval.Request) error {
	if r == nil {
		return fmt.Errorf("approval: nil request")
	}
	if r.ID == "" {
		r.ID = idgen.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = clock.Now()
	}
	s.mux.Lock()
	if prev, ok := s.entries[r.ID]; ok && prev.decision != nil {
		s.mux.Unlock()
		return approval.ErrAlreadyDecided
	}
	s.entries[r.ID] = &entry{request: r, decided: make(chan struct{})}
	s.mux.Unlock()
	_ = s.events.Publish(ctx, &approval.Event{Topic: approval.TopicRequestCreated, Data: r})
	return nil
}

func (s *service) ListPending(context.Context) ([]*approval.Request, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	pending := make([]*approval.Request, 0, len(s.entries))
	for _, e := range s.entries {
		if e.decision == nil {
			pending = append(pending, e.request)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	return pending, nil
}

func (s *service) Decide(ctx context.Context, id string, ok bool, reason string) (*approval.Decision, error) {
	s.mux.Lock()
	e, found := s.entries[id]
	if !found {
		s.mux.Unlock()
		return nil, fmt.Errorf("%w: %v", approval.ErrNotFound, id)
	}
	if e.decision != nil {
		s.mux.Unlock()
		return nil, fmt.Errorf("%w: %v", approval.ErrAlreadyDecided, id)
	}
	d := &approval.Decision{ID: id, Approved: ok, Reason: reason, DecidedAt: clock.Now()}
	e.decision = d
	close(e.decided)
	s.mux.Unlock()
	_ = s.events.Publish(ctx, &approval.Event{Topic: approval.TopicDecisionCreated, Data: d})
	return d, nil
}

func (s *service) Await(ctx context.Context, id string) (*approval.Decision, error) {
	s.mux.Lock()
	e, found := s.entries[id]
	s.mux.Unlock()
	if !found {
		return nil, fmt.Errorf("%w: %v", approval.ErrNotFound, id)
	}
	select {
	case <-e.decided:
		s.mux.Lock()
		defer s.mux.Unlock()
		return e.decision, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *service) Queue() messaging.Queue[approval.Event] { return s.events }

var _ approval.Service = (*service)(nil)
