package execution

import "fmt"

// Key is a typed handle to a context entry. Declaring keys once per flow
// gives tasks compile-time checked access to the shared state:
//
//	var Host = execution.NewKey[string]("host")
//	execution.Put(fc, Host, "h1")
//	host, ok := execution.Value(fc, Host)
type Key[T any] struct {
	name string
}

// NewKey declares a typed key.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the underlying string key.
func (k Key[T]) Name() string { return k.name }

// Put stores value under key.
func Put[T any](c *Context, key Key[T], value T) {
	c.Set(key.name, value)
}

// Value returns the value stored under key. The boolean is false when the
// key is missing or holds a value of another type.
func Value[T any](c *Context, key Key[T]) (T, bool) {
	var zero T
	raw, ok := c.Get(key.name)
	if !ok {
		return zero, false
	}
	ret, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return ret, true
}

// MustValue returns the value stored under key or panics.
func MustValue[T any](c *Context, key Key[T]) T {
	ret, ok := Value(c, key)
	if !ok {
		panic(fmt.Sprintf("execution: key %q not present", key.name))
	}
	return ret
}
