package memory

import (
	"github.com/viant/flow/service/approval"
	"github.com/viant/flow/service/messaging"
)

type Option func(*service)

// WithQueue replaces the event queue requests and decisions are published on.
func WithQueue(q messaging.Queue[approval.Event]) Option {
	return func(s *service) { s.events = q }
}
