package flow

import (
	"context"
	"time"

	"github.com/viant/flow/model/record"
	"github.com/viant/flow/progress"
	"github.com/viant/flow/runtime/execution"
)

// MinPeriod is the threshold a Whilst period must exceed to be honoured.
const MinPeriod = 100 * time.Millisecond

// Whilst runs task repeatedly while cond holds, evaluating cond before every
// iteration. A period longer than MinPeriod pauses between iterations; a
// period of MinPeriod or less runs iterations back to back. The first
// iteration starts immediately. Progress is indeterminate and ticked once per
// iteration.
func Whilst(fc *execution.Context, cond Condition, task Task, period time.Duration) *Execution {
	return newExecution(record.KindWhilst, fc, []Task{task}, progress.Indeterminate, runWhilst(cond, period))
}

func runWhilst(cond Condition, period time.Duration) strategy {
	return func(ctx context.Context, r *runner) error {
		task := r.tasks[0]
		for i := 0; ; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if cond == nil || !cond(r.fc) {
				return nil
			}
			if err := r.invoke(ctx, i, task); err != nil {
				return err
			}
			r.progress.Tick()
			if period <= MinPeriod {
				continue
			}
			timer := time.NewTimer(period)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}
