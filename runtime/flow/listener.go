package flow

import (
	"context"
	"time"

	"github.com/viant/flow/model/record"
	"github.com/viant/flow/runtime/execution"
)

// Info describes the flow a listener callback refers to.
type Info struct {
	ExecutionID string
	Name        string
	Kind        record.Kind
	Context     *execution.Context
	Tasks       int
	StartedAt   time.Time
}

// Listener observes flow lifecycle. Parallel flows invoke task callbacks from
// several goroutines, so implementations must be safe for concurrent use.
type Listener interface {
	OnFlowStart(ctx context.Context, info *Info)
	OnTaskStart(ctx context.Context, info *Info, index int, name string)
	OnTaskDone(ctx context.Context, info *Info, index int, name string, err error, elapsed time.Duration)
	OnFlowDone(ctx context.Context, info *Info, status execution.Status, err error)
}

// NoopListener ignores every callback. Embed it to implement a subset.
type NoopListener struct{}

func (NoopListener) OnFlowStart(context.Context, *Info)                                   {}
func (NoopListener) OnTaskStart(context.Context, *Info, int, string)                      {}
func (NoopListener) OnTaskDone(context.Context, *Info, int, string, error, time.Duration) {}
func (NoopListener) OnFlowDone(context.Context, *Info, execution.Status, error)           {}

type compositeListener []Listener

// NewCompositeListener fans callbacks out to every non-nil listener in order.
func NewCompositeListener(listeners ...Listener) Listener {
	var result compositeListener
	for _, l := range listeners {
		if l != nil {
			result = append(result, l)
		}
	}
	if len(result) == 0 {
		return NoopListener{}
	}
	if len(result) == 1 {
		return result[0]
	}
	return result
}

func (c compositeListener) OnFlowStart(ctx context.Context, info *Info) {
	for _, l := range c {
		l.OnFlowStart(ctx, info)
	}
}

func (c compositeListener) OnTaskStart(ctx context.Context, info *Info, index int, name string) {
	for _, l := range c {
		l.OnTaskStart(ctx, info, index, name)
	}
}

func (c compositeListener) OnTaskDone(ctx context.Context, info *Info, index int, name string, err error, elapsed time.Duration) {
	for _, l := range c {
		l.OnTaskDone(ctx, info, index, name, err, elapsed)
	}
}

func (c compositeListener) OnFlowDone(ctx context.Context, info *Info, status execution.Status, err error) {
	for _, l := range c {
		l.OnFlowDone(ctx, info, status, err)
	}
}
