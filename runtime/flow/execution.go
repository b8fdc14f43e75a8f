package flow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/flow/internal/clock"
	"github.com/viant/flow/internal/idgen"
	"github.com/viant/flow/model/record"
	"github.com/viant/flow/policy"
	"github.com/viant/flow/progress"
	"github.com/viant/flow/runtime/execution"
	"github.com/viant/flow/tracing"
)

// strategy drives the tasks of one flow through r.
type strategy func(ctx context.Context, r *runner) error

// Execution is a single-use handle on a composed flow. Options may be
// adjusted until it is started; after that every start method fails with
// ErrAlreadyStarted.
type Execution struct {
	id       string
	kind     record.Kind
	fc       *execution.Context
	tasks    []Task
	total    int
	strategy strategy

	mux     sync.Mutex
	options options
	started atomic.Bool
	done    chan struct{}
}

func newExecution(kind record.Kind, fc *execution.Context, tasks []Task, total int, s strategy) *Execution {
	if fc == nil {
		fc = execution.NewContext(nil)
	}
	return &Execution{
		id:       idgen.New(),
		kind:     kind,
		fc:       fc,
		tasks:    tasks,
		total:    total,
		strategy: s,
		done:     make(chan struct{}),
	}
}

// ID returns the execution identifier used by listeners and history.
func (e *Execution) ID() string { return e.id }

// Context returns the flow context.
func (e *Execution) Context() *execution.Context { return e.fc }

// Started reports whether a start method has been called.
func (e *Execution) Started() bool { return e.started.Load() }

// Done is closed once the Outcome has been delivered.
func (e *Execution) Done() <-chan struct{} { return e.done }

// With applies options. It has no effect once the execution started.
func (e *Execution) With(opts ...Option) *Execution {
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.started.Load() {
		return e
	}
	for _, opt := range opts {
		opt(&e.options)
	}
	return e
}

// Timeout bounds the whole flow. When the deadline passes no further task is
// started, the running one is cancelled through its context and the Outcome
// receives a *TimeoutError.
func (e *Execution) Timeout(timeout time.Duration) *Execution {
	return e.With(WithTimeout(timeout))
}

// Subscribe runs the flow on the calling goroutine and delivers the result to
// outcome. It returns ErrAlreadyStarted, without running anything, when the
// execution was started before.
func (e *Execution) Subscribe(ctx context.Context, outcome Outcome) error {
	if !e.start() {
		return ErrAlreadyStarted
	}
	defer close(e.done)
	e.execute(ctx, outcome)
	return nil
}

// MustSubscribe is like Subscribe but panics on a second start.
func (e *Execution) MustSubscribe(ctx context.Context, outcome Outcome) {
	if err := e.Subscribe(ctx, outcome); err != nil {
		panic(err)
	}
}

// Go starts the flow on a new goroutine; wait on Done for completion.
func (e *Execution) Go(ctx context.Context, outcome Outcome) error {
	if !e.start() {
		return ErrAlreadyStarted
	}
	go func() {
		defer close(e.done)
		e.execute(ctx, outcome)
	}()
	return nil
}

// Run executes the flow synchronously and returns the context together with
// the error that would be passed to Outcome.OnError.
func (e *Execution) Run(ctx context.Context) (*execution.Context, error) {
	var runErr error
	err := e.Subscribe(ctx, Callbacks{
		Error: func(_ *execution.Context, err error) { runErr = err },
	})
	if err != nil {
		return e.fc, err
	}
	return e.fc, runErr
}

func (e *Execution) start() bool {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.started.CompareAndSwap(false, true)
}

func (e *Execution) execute(ctx context.Context, outcome Outcome) {
	if ctx == nil {
		ctx = context.Background()
	}
	if outcome == nil {
		outcome = Callbacks{}
	}
	opts := e.options
	fc := e.fc
	if err := fc.Bind(); err != nil {
		outcome.OnError(fc, err)
		return
	}
	if opts.policy != nil {
		ctx = policy.WithPolicy(ctx, opts.policy)
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, opts.timeout, ErrTimeout)
		defer cancel()
	}

	info := &Info{
		ExecutionID: e.id,
		Name:        opts.name,
		Kind:        e.kind,
		Context:     fc,
		Tasks:       len(e.tasks),
		StartedAt:   clock.Now(),
	}
	listener := NewCompositeListener(opts.listeners...)

	var span *tracing.Span
	if opts.tracing {
		ctx, span = tracing.StartFlow(ctx, string(e.kind), opts.name, e.id, fc.ID, len(e.tasks))
	}

	indicator, release, err := e.acquireProgress(ctx, fc.Progress(), opts.progressWait)
	if err != nil {
		status, settled := settle(ctx, opts.timeout, err)
		fc.Complete(status, settled)
		tracing.EndSpan(span, settled)
		outcome.OnError(fc, settled)
		return
	}

	listener.OnFlowStart(ctx, info)
	r := &runner{
		fc:       fc,
		tasks:    e.tasks,
		progress: indicator,
		listener: listener,
		info:     info,
		tracing:  opts.tracing,
	}
	status, err := settle(ctx, opts.timeout, e.run(ctx, r, indicator, release))
	fc.Complete(status, err)
	listener.OnFlowDone(ctx, info, status, err)
	tracing.EndSpan(span, err)
	if err != nil {
		outcome.OnError(fc, err)
		return
	}
	outcome.OnSuccess(fc)
}

// run brackets the strategy with Start/Stop. Stop runs exactly once even if
// the strategy panics, and never when Start itself failed. The progress lease
// is released on every path.
func (e *Execution) run(ctx context.Context, r *runner, indicator progress.Progress, release func()) error {
	defer release()
	indicator.Start(e.total)
	defer indicator.Stop()
	return e.strategy(ctx, r)
}

// settle maps the flow error to a final status. Errors raised after the flow
// deadline passed become a *TimeoutError.
func settle(ctx context.Context, timeout time.Duration, err error) (execution.Status, error) {
	if err == nil {
		return execution.StatusSuccess, nil
	}
	if errors.Is(context.Cause(ctx), ErrTimeout) {
		return execution.StatusTimeout, &TimeoutError{Timeout: timeout, Err: err}
	}
	return execution.StatusFailure, err
}

func (e *Execution) acquireProgress(ctx context.Context, p progress.Progress, wait bool) (progress.Progress, func(), error) {
	p = progress.OrNoop(p)
	owner, ok := p.(progress.Owner)
	if !ok {
		return p, func() {}, nil
	}
	lease, err := owner.Acquire(ctx, wait)
	if err != nil {
		return nil, nil, err
	}
	return lease, lease.Release, nil
}
