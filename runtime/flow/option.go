package flow

import (
	"time"

	"github.com/viant/flow/policy"
)

// Option customises an Execution before it starts.
type Option func(o *options)

type options struct {
	name         string
	listeners    []Listener
	policy       *policy.Policy
	tracing      bool
	timeout      time.Duration
	progressWait bool
}

// WithName sets the flow name reported to listeners, spans and records.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithListener appends lifecycle listeners.
func WithListener(listeners ...Listener) Option {
	return func(o *options) { o.listeners = append(o.listeners, listeners...) }
}

// WithPolicy gates every task with p. A policy carried by the start context is
// used when none is set.
func WithPolicy(p *policy.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithTracing emits a span per flow and per task.
func WithTracing(enabled bool) Option {
	return func(o *options) { o.tracing = enabled }
}

// WithTimeout bounds the whole flow; zero disables the deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithProgressWait makes a flow queue for a shared progress indicator instead
// of failing with progress.ErrBusy.
func WithProgressWait(wait bool) Option {
	return func(o *options) { o.progressWait = wait }
}
