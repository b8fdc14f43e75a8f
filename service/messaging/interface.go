// Package messaging defines the queue contract used to fan out flow
// lifecycle events and approval requests.
package messaging

import (
	"context"
)

// Queue is a typed message queue.
type Queue[T any] interface {
	// Publish enqueues t. Implementations may block or drop when full.
	Publish(ctx context.Context, t *T) error

	// Consume blocks until a message is available or ctx is done.
	Consume(ctx context.Context) (Message[T], error)

	// Size returns the number of messages waiting to be consumed.
	Size() int
}

// Message is a consumed queue entry. Exactly one of Ack or Nack settles it.
type Message[T any] interface {
	ID() string

	// T returns the payload.
	T() *T

	Ack() error

	// Nack reports a processing failure; the message may be redelivered or
	// moved to a dead letter queue.
	Nack(err error) error
}
