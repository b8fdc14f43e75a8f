package approval

import (
	"context"
	"errors"

	"github.com/viant/flow/service/messaging"
)

var (
	// ErrNotFound is returned for unknown request IDs.
	ErrNotFound = errors.New("approval: request not found")
	// ErrAlreadyDecided is returned when a request is decided twice.
	ErrAlreadyDecided = errors.New("approval: request already decided")
)

// Service defines the approval service interface.
type Service interface {
	RequestApproval(ctx context.Context, r *Request) error
	ListPending(ctx context.Context) ([]*Request, error)
	Decide(ctx context.Context, id string, approved bool, reason string) (*Decision, error)
	// Await blocks until request id is decided or ctx is done.
	Await(ctx context.Context, id string) (*Decision, error)
	Queue() messaging.Queue[Event]
}
