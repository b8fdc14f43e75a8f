package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flow/runtime/execution"
)

func TestCallback_SettlesOnce(t *testing.T) {
	var second, third error
	task := Callback(func(_ context.Context, _ *execution.Context, ctrl Control) {
		require.NoError(t, ctrl.Proceed())
		second = ctrl.Abort(errors.New("late"))
		third = ctrl.Proceed()
	})
	_, err := Series(nil, task).Run(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, second, ErrAlreadySettled)
	assert.ErrorIs(t, third, ErrAlreadySettled)
}

func TestCallback_AbortWithoutReason(t *testing.T) {
	task := Callback(func(_ context.Context, _ *execution.Context, ctrl Control) {
		_ = ctrl.Abort(nil)
	})
	_, err := Series(nil, task).Run(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
}

func TestNameOf(t *testing.T) {
	noop := Func(func(context.Context, *execution.Context) error { return nil })
	assert.Equal(t, "task-2", NameOf(noop, 2))
	assert.Equal(t, "reload", NameOf(Named("reload", noop), 0))
	assert.Equal(t, "task-1", NameOf(Named("", noop), 1))
}
