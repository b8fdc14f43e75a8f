// Package policy provides a simple, optional per-task approval layer that can
// be attached to a flow execution via context or runner option. A nil *Policy
// keeps the default "auto" behaviour.

package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Execution modes recognised by the runner.
const (
	ModeAsk  = "ask"  // ask before every task
	ModeAuto = "auto" // execute automatically (default)
	ModeDeny = "deny" // block execution
)

// ErrDenied is wrapped by every rejection returned from Evaluate.
var ErrDenied = errors.New("policy: task denied")

// AskFunc is invoked when Mode==ask. Returning true approves the task, false
// rejects it. Implementations MAY mutate the policy (for example, switching
// to ModeAuto after the first approval).
type AskFunc func(
	ctx context.Context,
	task string, // task name
	state map[string]interface{}, // snapshot of the flow context
	p *Policy,
) bool

// Policy represents the approval settings for the current flow run.
//
//   - Mode controls the high-level behaviour (ask / auto / deny).
//   - AllowList, BlockList allow coarse filtering regardless of Mode.
//   - Ask is only used when Mode==ask.
type Policy struct {
	Mode      string
	AllowList []string
	BlockList []string
	Ask       AskFunc
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// Validate checks the mode value.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch strings.ToLower(c.Mode) {
	case "", ModeAsk, ModeAuto, ModeDeny:
		return nil
	}
	return fmt.Errorf("policy: unsupported mode %q", c.Mode)
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config back to a runtime Policy (without
// AskFunc).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed evaluates AllowList / BlockList using case-insensitive exact
// matches of the task name.
func (p *Policy) IsAllowed(task string) bool {
	if p == nil {
		return true
	}
	normalized := strings.ToLower(task)

	// BlockList has priority.
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// Evaluate decides whether task may run. state is only consulted by AskFunc.
func (p *Policy) Evaluate(ctx context.Context, task string, state func() map[string]interface{}) error {
	if p == nil {
		return nil
	}
	if !p.IsAllowed(task) {
		return fmt.Errorf("%w: %v is not allowed", ErrDenied, task)
	}
	switch strings.ToLower(p.Mode) {
	case ModeDeny:
		return fmt.Errorf("%w: %v (mode deny)", ErrDenied, task)
	case ModeAsk:
		if p.Ask == nil {
			return fmt.Errorf("%w: %v (no approver)", ErrDenied, task)
		}
		var snapshot map[string]interface{}
		if state != nil {
			snapshot = state()
		}
		if !p.Ask(ctx, task, snapshot, p) {
			return fmt.Errorf("%w: %v (rejected)", ErrDenied, task)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
