package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Evaluate(t *testing.T) {
	state := func() map[string]interface{} { return map[string]interface{}{"host": "h1"} }

	testCases := []struct {
		name    string
		policy  *Policy
		task    string
		allowed bool
	}{
		{name: "nil policy", policy: nil, task: "reload", allowed: true},
		{name: "auto", policy: &Policy{Mode: ModeAuto}, task: "reload", allowed: true},
		{name: "deny", policy: &Policy{Mode: ModeDeny}, task: "reload", allowed: false},
		{name: "block list", policy: &Policy{BlockList: []string{"RELOAD"}}, task: "reload", allowed: false},
		{name: "allow list miss", policy: &Policy{AllowList: []string{"read"}}, task: "reload", allowed: false},
		{name: "allow list hit", policy: &Policy{AllowList: []string{"read"}}, task: "Read", allowed: true},
		{name: "ask without approver", policy: &Policy{Mode: ModeAsk}, task: "reload", allowed: false},
		{
			name: "ask approved",
			policy: &Policy{Mode: ModeAsk, Ask: func(_ context.Context, task string, s map[string]interface{}, _ *Policy) bool {
				return task == "reload" && s["host"] == "h1"
			}},
			task:    "reload",
			allowed: true,
		},
		{
			name: "ask rejected",
			policy: &Policy{Mode: ModeAsk, Ask: func(context.Context, string, map[string]interface{}, *Policy) bool {
				return false
			}},
			task:    "reload",
			allowed: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.policy.Evaluate(context.Background(), tc.task, state)
			if tc.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrDenied)
		})
	}
}

func TestPolicy_Config(t *testing.T) {
	p := &Policy{Mode: ModeDeny, AllowList: []string{"a"}, BlockList: []string{"b"}}
	cfg := ToConfig(p)
	require.NoError(t, cfg.Validate())
	back := FromConfig(cfg)
	assert.Equal(t, p.Mode, back.Mode)
	assert.Equal(t, p.AllowList, back.AllowList)
	assert.Equal(t, p.BlockList, back.BlockList)

	assert.Error(t, (&Config{Mode: "sometimes"}).Validate())
	assert.Nil(t, ToConfig(nil))
	assert.Nil(t, FromConfig(nil))
}

func TestPolicy_Context(t *testing.T) {
	p := &Policy{Mode: ModeAuto}
	ctx := WithPolicy(context.Background(), p)
	assert.Equal(t, p, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}
