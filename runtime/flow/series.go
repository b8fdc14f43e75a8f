package flow

import (
	"context"

	"github.com/viant/flow/model/record"
	"github.com/viant/flow/runtime/execution"
)

// Series runs tasks one after another against fc. Task i+1 starts only after
// task i succeeded; the first failure skips the remainder and is delivered to
// the Outcome unchanged. Progress is started with len(tasks) and ticked after
// each successful task.
func Series(fc *execution.Context, tasks ...Task) *Execution {
	return newExecution(record.KindSeries, fc, tasks, len(tasks), runSeries)
}

// Sequential is an alias of Series.
func Sequential(fc *execution.Context, tasks ...Task) *Execution {
	return Series(fc, tasks...)
}

func runSeries(ctx context.Context, r *runner) error {
	for i, task := range r.tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.invoke(ctx, i, task); err != nil {
			return err
		}
		r.progress.Tick()
	}
	return nil
}
