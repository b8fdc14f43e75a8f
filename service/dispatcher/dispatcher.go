package dispatcher

import (
	"context"
	"errors"
)

// ErrNilOperation is returned when a nil operation is dispatched.
var ErrNilOperation = errors.New("dispatcher: nil operation")

// Service executes management operations.
type Service interface {
	Execute(ctx context.Context, op *Operation) (*Result, error)
}

// ExecuteComposite dispatches ops as one composite step.
func ExecuteComposite(ctx context.Context, service Service, ops ...*Operation) (*Result, error) {
	return service.Execute(ctx, Composite(ops...))
}
