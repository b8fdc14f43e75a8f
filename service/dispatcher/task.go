package dispatcher

import (
	"context"

	"github.com/viant/flow/runtime/execution"
	"github.com/viant/flow/runtime/flow"
)

// Builder derives an operation from the flow state, allowing a task to
// address resources discovered by earlier tasks.
type Builder func(fc *execution.Context) (*Operation, error)

// Static returns a Builder producing op.
func Static(op *Operation) Builder {
	return func(*execution.Context) (*Operation, error) { return op, nil }
}

// Read dispatches op and stores the result value under key.
func Read(service Service, op *Operation, key string) flow.Task {
	return flow.Named(op.String(), ReadWith(service, Static(op), key))
}

// ReadWith is like Read with a state-dependent operation.
func ReadWith(service Service, build Builder, key string) flow.Task {
	return flow.Func(func(ctx context.Context, fc *execution.Context) error {
		result, err := dispatch(ctx, service, build, fc)
		if err != nil {
			return err
		}
		fc.Set(key, result.Value)
		return nil
	})
}

// Write dispatches op and discards the result.
func Write(service Service, op *Operation) flow.Task {
	return flow.Named(op.String(), WriteWith(service, Static(op)))
}

// WriteWith is like Write with a state-dependent operation.
func WriteWith(service Service, build Builder) flow.Task {
	return flow.Func(func(ctx context.Context, fc *execution.Context) error {
		_, err := dispatch(ctx, service, build, fc)
		return err
	})
}

func dispatch(ctx context.Context, service Service, build Builder, fc *execution.Context) (*Result, error) {
	op, err := build(fc)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrNilOperation
	}
	return service.Execute(ctx, op)
}
