package flow

import (
	"context"
	"sync/atomic"

	"github.com/viant/flow/runtime/execution"
)

// Control is handed to callback-style tasks. Exactly one of Proceed or Abort
// settles the task; later calls return ErrAlreadySettled and are ignored.
type Control interface {
	Proceed() error
	Abort(err error) error
}

type control struct {
	settled atomic.Bool
	result  chan error
}

func (c *control) settle(err error) error {
	if !c.settled.CompareAndSwap(false, true) {
		return ErrAlreadySettled
	}
	c.result <- err
	return nil
}

func (c *control) Proceed() error { return c.settle(nil) }

func (c *control) Abort(err error) error {
	if err == nil {
		err = ErrAborted
	}
	return c.settle(err)
}

// Callback adapts a continuation-style function to Task. fn may settle
// synchronously or from another goroutine; the runner waits for the signal or
// for ctx to be done, whichever comes first.
func Callback(fn func(ctx context.Context, fc *execution.Context, ctrl Control)) Task {
	return Func(func(ctx context.Context, fc *execution.Context) error {
		ctrl := &control{result: make(chan error, 1)}
		fn(ctx, fc, ctrl)
		select {
		case err := <-ctrl.result:
			return err
		case <-ctx.Done():
			if ctrl.settled.CompareAndSwap(false, true) {
				return ctx.Err()
			}
			return <-ctrl.result
		}
	})
}
