package flow

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAlreadyStarted is returned when an Execution is started a second time.
	ErrAlreadyStarted = errors.New("flow: execution already started")
	// ErrAlreadySettled is returned by Control when a task settles twice.
	ErrAlreadySettled = errors.New("flow: task already settled")
	// ErrAborted is used when a callback task aborts without a reason.
	ErrAborted = errors.New("flow: task aborted")
	// ErrTimeout is matched by every error produced by an expired flow deadline.
	ErrTimeout = errors.New("flow: timeout")
	// ErrNilTask is returned when a task list contains a nil entry.
	ErrNilTask = errors.New("flow: nil task")
)

// TimeoutError reports a flow aborted by its deadline. It matches ErrTimeout
// and context.DeadlineExceeded as well as the error the interrupted task
// returned.
type TimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("flow: timeout after %v", e.Timeout)
	}
	return fmt.Sprintf("flow: timeout after %v: %v", e.Timeout, e.Err)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() []error {
	if e.Err == nil {
		return []error{context.DeadlineExceeded}
	}
	return []error{context.DeadlineExceeded, e.Err}
}

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Task  string
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("flow: task %v panicked: %v", e.Task, e.Value)
}
