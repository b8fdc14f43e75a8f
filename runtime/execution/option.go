package execution

import "github.com/viant/structology/conv"

// Option customises a Context at construction.
type Option func(c *Context)

// WithID overrides the generated context ID.
func WithID(id string) Option {
	return func(c *Context) {
		if id != "" {
			c.ID = id
		}
	}
}

// WithState pre-seeds the context with inputs.
func WithState(state map[string]interface{}) Option {
	return func(c *Context) {
		for k, v := range state {
			c.state[k] = v
		}
	}
}

// WithStateListeners attaches listeners invoked on every Set.
// The slice is copied; callers can reuse their backing array.
func WithStateListeners(listeners ...StateListener) Option {
	return func(c *Context) {
		if len(listeners) == 0 {
			return
		}
		c.listeners = append(c.listeners, listeners...)
	}
}

// WithConverter sets the converter used by Decode
func WithConverter(converter *conv.Converter) Option {
	return func(c *Context) {
		c.converter = converter
	}
}
