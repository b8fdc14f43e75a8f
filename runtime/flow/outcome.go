package flow

import "github.com/viant/flow/runtime/execution"

// Outcome receives the result of one flow execution. Exactly one method is
// invoked, exactly once, after the progress indicator has been stopped.
type Outcome interface {
	OnSuccess(fc *execution.Context)
	OnError(fc *execution.Context, err error)
}

// Callbacks adapts functions to Outcome; nil members are skipped.
type Callbacks struct {
	Success func(fc *execution.Context)
	Error   func(fc *execution.Context, err error)
}

func (c Callbacks) OnSuccess(fc *execution.Context) {
	if c.Success != nil {
		c.Success(fc)
	}
}

func (c Callbacks) OnError(fc *execution.Context, err error) {
	if c.Error != nil {
		c.Error(fc, err)
	}
}
