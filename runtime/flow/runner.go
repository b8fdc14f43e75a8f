package flow

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/viant/flow/internal/clock"
	"github.com/viant/flow/policy"
	"github.com/viant/flow/progress"
	"github.com/viant/flow/runtime/execution"
	"github.com/viant/flow/tracing"
)

type runner struct {
	fc       *execution.Context
	tasks    []Task
	progress progress.Progress
	listener Listener
	info     *Info
	tracing  bool
}

// invoke runs one task with policy, listener, tracing and panic handling.
func (r *runner) invoke(ctx context.Context, index int, task Task) (err error) {
	name := NameOf(task, index)
	r.listener.OnTaskStart(ctx, r.info, index, name)
	started := clock.Now()
	var span *tracing.Span
	if r.tracing {
		ctx, span = tracing.StartTask(ctx, index, name)
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Task: name, Value: rec, Stack: debug.Stack()}
		}
		tracing.EndSpan(span, err)
		r.listener.OnTaskDone(ctx, r.info, index, name, err, clock.Since(started))
	}()
	if task == nil {
		return fmt.Errorf("%w at index %d", ErrNilTask, index)
	}
	if err = policy.FromContext(ctx).Evaluate(ctx, name, r.fc.Snapshot); err != nil {
		return err
	}
	return task.Execute(ctx, r.fc)
}
