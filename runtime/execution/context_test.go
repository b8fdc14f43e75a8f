package execution

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flow/progress"
)

func TestContext_SetGet(t *testing.T) {
	c := NewContext(nil, WithState(map[string]interface{}{"seed": 1}))

	value, ok := c.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, value)

	c.Set("k", "v")
	value, ok = c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", value)

	c.Set("k", "v2")
	str, ok := c.GetString("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", str)

	seed, ok := c.GetInt("seed")
	assert.True(t, ok)
	assert.Equal(t, 1, seed)

	_, ok = c.GetBool("k")
	assert.False(t, ok)

	assert.Equal(t, []string{"k", "seed"}, c.Keys())
	assert.True(t, c.Has("seed"))
	assert.Equal(t, progress.Noop, c.Progress())
}

func TestContext_StateListeners(t *testing.T) {
	type change struct {
		key      string
		old, new interface{}
	}
	var changes []change
	c := NewContext(nil, WithStateListeners(func(_ *Context, key string, oldVal, newVal interface{}) {
		changes = append(changes, change{key, oldVal, newVal})
	}))
	c.Set("a", 1)
	c.Set("a", 2)
	assert.Equal(t, []change{{"a", nil, 1}, {"a", 1, 2}}, changes)
}

func TestContext_Stack(t *testing.T) {
	c := NewContext(nil)
	assert.True(t, c.EmptyStack())
	_, ok := c.Pop()
	assert.False(t, ok)

	c.Push("first")
	c.Push("second")
	top, ok := c.Peek()
	assert.True(t, ok)
	assert.Equal(t, "second", top)

	top, _ = c.Pop()
	assert.Equal(t, "second", top)
	top, _ = c.Pop()
	assert.Equal(t, "first", top)
	assert.True(t, c.EmptyStack())
}

func TestContext_Decode(t *testing.T) {
	type socketBinding struct {
		Name string
		Port int
	}
	c := NewContext(nil)
	c.Set("binding", map[string]interface{}{"Name": "management-https", "Port": 9993})

	var binding socketBinding
	require.NoError(t, c.Decode("binding", &binding))
	assert.Equal(t, socketBinding{Name: "management-https", Port: 9993}, binding)

	err := c.Decode("missing", &binding)
	assert.ErrorIs(t, err, ErrNotPresent)
}

func TestContext_BindAndComplete(t *testing.T) {
	c := NewContext(nil, WithID("ctx-1"))
	assert.Equal(t, "ctx-1", c.ID)
	assert.Equal(t, StatusPending, c.Status())

	require.NoError(t, c.Bind())
	assert.Equal(t, StatusRunning, c.Status())
	assert.ErrorIs(t, c.Bind(), ErrContextInUse)

	c.Complete(StatusFailure, assert.AnError)
	c.Complete(StatusSuccess, nil)
	assert.True(t, c.Failed())
	assert.False(t, c.Successful())
	assert.False(t, c.TimedOut())
	assert.Equal(t, assert.AnError, c.Err())
	assert.Equal(t, assert.AnError.Error(), c.FailureReason())
	assert.True(t, c.Status().IsTerminal())
}

func TestContext_ConcurrentDisjointWrites(t *testing.T) {
	c := NewContext(nil)
	keys := []string{"a", "b", "c", "d", "e", "f"}
	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			c.Set(key, i)
		}(i, key)
	}
	wg.Wait()
	assert.Len(t, c.Snapshot(), len(keys))
}
