// Package dao defines the storage contract used for flow history.
package dao

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no entity is stored under the key.
	ErrNotFound = errors.New("dao: not found")
	// ErrInvalidID is returned for an empty key.
	ErrInvalidID = errors.New("dao: invalid id")
	// ErrNilEntity is returned when saving a nil pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)

// Service is a generic keyed store. Implementations return copies so that
// callers may mutate loaded entities freely.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	// List returns entities matching every parameter.
	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}

// Parameter is a named List filter. Implementations document the names they
// understand; unknown names are ignored.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a filter; a single value is stored unwrapped, several
// values match any of them.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
