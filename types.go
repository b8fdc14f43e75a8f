package flow

import (
	rflow "github.com/viant/flow/runtime/flow"
)

// Aliases of the runtime types most callers need.
type (
	Task      = rflow.Task
	Func      = rflow.Func
	Condition = rflow.Condition
	Control   = rflow.Control
	Outcome   = rflow.Outcome
	Callbacks = rflow.Callbacks
	Execution = rflow.Execution
	Listener  = rflow.Listener
)

var (
	ErrAlreadyStarted = rflow.ErrAlreadyStarted
	ErrTimeout        = rflow.ErrTimeout
)

// Named attaches a display name to task.
func Named(name string, task Task) Task { return rflow.Named(name, task) }

// Callback adapts a continuation-style function to Task.
var Callback = rflow.Callback
