package event

import (
	"context"
	"sync"

	"github.com/viant/flow/service/messaging/memory"
	"go.uber.org/zap"
)

// Service publishes flow lifecycle events on an in-memory queue.
type Service struct {
	queue     *memory.Queue[Event[any]]
	publisher *Publisher[any]
	logger    *zap.Logger
	mux       sync.Mutex
	listener  *Listener[any]
}

// New creates an event service backed by a memory queue.
func New(config memory.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	queue := memory.NewQueue[Event[any]](config)
	return &Service{
		queue:     queue,
		publisher: NewPublisher[any](queue),
		logger:    logger,
	}
}

// Publish enqueues an event.
func (s *Service) Publish(ctx context.Context, event *Event[any]) error {
	return s.publisher.Publish(ctx, event)
}

// Consume returns the next event.
func (s *Service) Consume(ctx context.Context) (*Event[any], error) {
	return s.publisher.Consume(ctx)
}

// Pending returns the number of queued events.
func (s *Service) Pending() int {
	return s.queue.Size()
}

// SetListener replaces the background handler; nil stops the current one.
func (s *Service) SetListener(handler func(*Event[any])) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.listener != nil {
		s.listener.Stop()
		s.listener = nil
	}
	if handler == nil {
		return
	}
	s.listener = NewListener[any](s.publisher, handler, s.logger)
	s.listener.Start()
}

// Close stops the background handler, if any.
func (s *Service) Close() {
	s.SetListener(nil)
}
