package execution

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/flow/internal/idgen"
	"github.com/viant/flow/progress"
	"github.com/viant/structology/conv"
)

var (
	// ErrNotPresent is returned by Decode when the key was never set.
	ErrNotPresent = errors.New("execution: key not present")
	// ErrContextInUse is returned when a context is bound to a second flow.
	ErrContextInUse = errors.New("execution: context already bound to a flow")
)

// StateListener is invoked after Set stores a value. Listeners run outside the
// context lock, in the goroutine of the writing task.
type StateListener func(c *Context, key string, oldVal, newVal interface{})

// Context is the keyed state shared by the tasks of one flow execution.
// A Context is created by the caller, lives for exactly one execution and
// must not be reused afterwards.
type Context struct {
	ID string

	mu        sync.RWMutex
	state     map[string]interface{}
	stack     []interface{}
	listeners []StateListener
	converter *conv.Converter
	progress  progress.Progress

	bound   bool
	status  Status
	err     error
	settled bool
}

// NewContext creates a context bound to the supplied progress indicator.
func NewContext(p progress.Progress, opts ...Option) *Context {
	ret := &Context{
		ID:       idgen.New(),
		state:    make(map[string]interface{}),
		progress: progress.OrNoop(p),
		status:   StatusPending,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Progress returns the indicator bound at construction.
func (c *Context) Progress() progress.Progress {
	return c.progress
}

// Set stores value under key, replacing any previous value.
func (c *Context) Set(key string, value interface{}) {
	c.mu.Lock()
	old := c.state[key]
	c.state[key] = value
	listeners := c.listeners
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(c, key, old, value)
	}
}

// Get returns the last value stored under key.
func (c *Context) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.state[key]
	return value, ok
}

// Has reports whether key was set.
func (c *Context) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// GetString retrieves a parameter as a string
func (c *Context) GetString(key string) (string, bool) {
	value, ok := c.Get(key)
	if !ok {
		return "", false
	}
	ret, ok := value.(string)
	return ret, ok
}

// GetInt retrieves a parameter as an integer
func (c *Context) GetInt(key string) (int, bool) {
	value, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	ret, ok := value.(int)
	return ret, ok
}

// GetBool retrieves a parameter as a boolean
func (c *Context) GetBool(key string) (bool, bool) {
	value, ok := c.Get(key)
	if !ok {
		return false, false
	}
	ret, ok := value.(bool)
	return ret, ok
}

// Keys returns the sorted list of keys set so far.
func (c *Context) Keys() []string {
	c.mu.RLock()
	ret := make([]string, 0, len(c.state))
	for k := range c.state {
		ret = append(ret, k)
	}
	c.mu.RUnlock()
	sort.Strings(ret)
	return ret
}

// Snapshot returns a copy of the keyed state.
func (c *Context) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make(map[string]interface{}, len(c.state))
	for k, v := range c.state {
		ret[k] = v
	}
	return ret
}

// Decode converts the value stored under key into dest, which must be a
// pointer. It is typically used to turn a generic management result into a
// typed struct.
func (c *Context) Decode(key string, dest interface{}) error {
	value, ok := c.Get(key)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotPresent, key)
	}
	c.mu.Lock()
	if c.converter == nil {
		c.converter = conv.NewConverter(conv.DefaultOptions())
	}
	converter := c.converter
	c.mu.Unlock()
	if err := converter.Convert(value, dest); err != nil {
		return fmt.Errorf("failed to decode %v: %w", key, err)
	}
	return nil
}

// Push adds value on top of the context stack.
func (c *Context) Push(value interface{}) {
	c.mu.Lock()
	c.stack = append(c.stack, value)
	c.mu.Unlock()
}

// Pop removes and returns the top of the stack.
func (c *Context) Pop() (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) == 0 {
		return nil, false
	}
	last := len(c.stack) - 1
	ret := c.stack[last]
	c.stack[last] = nil
	c.stack = c.stack[:last]
	return ret, true
}

// Peek returns the top of the stack without removing it.
func (c *Context) Peek() (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.stack) == 0 {
		return nil, false
	}
	return c.stack[len(c.stack)-1], true
}

// EmptyStack reports whether the stack holds no values.
func (c *Context) EmptyStack() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stack) == 0
}

// Bind marks the context as owned by a starting flow. A context can be bound
// once; the second call returns ErrContextInUse.
func (c *Context) Bind() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bound {
		return ErrContextInUse
	}
	c.bound = true
	c.status = StatusRunning
	return nil
}

// Complete records the terminal status of the flow. Only the first call has
// an effect.
func (c *Context) Complete(status Status, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.settled {
		return
	}
	c.settled = true
	c.status = status
	c.err = err
}

// Status returns the current flow status.
func (c *Context) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Err returns the error the flow failed with, if any.
func (c *Context) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Successful reports whether the flow completed all tasks.
func (c *Context) Successful() bool { return c.Status() == StatusSuccess }

// Failed reports whether a task failed.
func (c *Context) Failed() bool { return c.Status() == StatusFailure }

// TimedOut reports whether the flow exceeded its deadline.
func (c *Context) TimedOut() bool { return c.Status() == StatusTimeout }

// FailureReason returns the failure message or an empty string.
func (c *Context) FailureReason() string {
	if err := c.Err(); err != nil {
		return err.Error()
	}
	return ""
}
