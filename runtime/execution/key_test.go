package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	host := NewKey[string]("host")
	port := NewKey[int]("port")
	c := NewContext(nil)

	_, ok := Value(c, host)
	assert.False(t, ok)

	Put(c, host, "h1")
	value, ok := Value(c, host)
	assert.True(t, ok)
	assert.Equal(t, "h1", value)
	assert.Equal(t, "host", host.Name())

	c.Set("port", "not a number")
	_, ok = Value(c, port)
	assert.False(t, ok)

	assert.Panics(t, func() { MustValue(c, NewKey[bool]("missing")) })
	assert.Equal(t, "h1", MustValue(c, host))
}
