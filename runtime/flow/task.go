package flow

import (
	"context"
	"strconv"

	"github.com/viant/flow/runtime/execution"
)

// Task is a single asynchronous step of a flow. Execute blocks for the
// duration of the step's own work and settles exactly once by returning:
// nil proceeds to the next task, an error aborts the remainder.
//
// A task may read and write the Context and perform remote calls, but any
// asynchronous work it starts must complete before Execute returns. Long
// running tasks should observe ctx between suspension points.
type Task interface {
	Execute(ctx context.Context, fc *execution.Context) error
}

// Func adapts a plain function to Task.
type Func func(ctx context.Context, fc *execution.Context) error

// Execute calls f.
func (f Func) Execute(ctx context.Context, fc *execution.Context) error {
	return f(ctx, fc)
}

// Condition is evaluated by Whilst before every iteration.
type Condition func(fc *execution.Context) bool

// Namer is implemented by tasks that carry a display name.
type Namer interface {
	Name() string
}

type namedTask struct {
	Task
	name string
}

func (n *namedTask) Name() string { return n.name }

// Named attaches a display name used by listeners, tracing, policies and
// history records.
func Named(name string, task Task) Task {
	return &namedTask{Task: task, name: name}
}

// NameOf returns the task name or "task-<index>".
func NameOf(task Task, index int) string {
	if n, ok := task.(Namer); ok && n.Name() != "" {
		return n.Name()
	}
	return "task-" + strconv.Itoa(index)
}
