package correlation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	g := NewGroup("g1", 3)
	assert.False(t, g.Done())
	assert.False(t, g.MarkDone(0, nil))
	assert.False(t, g.MarkDone(2, first))
	assert.True(t, g.MarkDone(1, second))
	assert.False(t, g.MarkDone(1, nil), "completion is reported once")

	err, index := g.FirstError()
	assert.Equal(t, first, err)
	assert.Equal(t, 2, index)
	assert.True(t, g.Failed())
	assert.True(t, g.Done())
	assert.Equal(t, 4, g.Completed())
}

func TestGroup_Empty(t *testing.T) {
	g := NewGroup("empty", 0)
	assert.True(t, g.Done())
	err, index := g.FirstError()
	assert.NoError(t, err)
	assert.Equal(t, -1, index)
}
