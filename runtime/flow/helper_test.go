package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/flow/runtime/execution"
)

// journal records progress, task and outcome events in order.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(format string, args ...interface{}) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

func (j *journal) Start(total int) { j.add("start(%d)", total) }
func (j *journal) Tick()           { j.add("tick") }
func (j *journal) Stop()           { j.add("stop") }

func (j *journal) outcome() Outcome {
	return Callbacks{
		Success: func(*execution.Context) { j.add("success") },
		Error:   func(_ *execution.Context, err error) { j.add("error(%v)", err) },
	}
}

func (j *journal) task(name string, err error) Task {
	return Named(name, Func(func(context.Context, *execution.Context) error {
		j.add(name)
		return err
	}))
}
