package flow

import (
	"context"

	"github.com/viant/flow/model/record"
	"github.com/viant/flow/runtime/correlation"
	"github.com/viant/flow/runtime/execution"
	"golang.org/x/sync/errgroup"
)

// Parallel starts all tasks at once against the shared fc. The first failure
// cancels the context seen by the remaining tasks; the Outcome fires only
// after every task has returned and carries the first failure. Tasks must
// write to disjoint keys.
func Parallel(fc *execution.Context, tasks ...Task) *Execution {
	return newExecution(record.KindParallel, fc, tasks, len(tasks), runParallel)
}

func runParallel(ctx context.Context, r *runner) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	group := correlation.NewGroup(r.info.ExecutionID, len(r.tasks))
	g, gctx := errgroup.WithContext(ctx)
	for i, task := range r.tasks {
		g.Go(func() error {
			err := r.invoke(gctx, i, task)
			group.MarkDone(i, err)
			if err == nil {
				r.progress.Tick()
			}
			return err
		})
	}
	waitErr := g.Wait()
	if err, _ := group.FirstError(); err != nil {
		return err
	}
	return waitErr
}
