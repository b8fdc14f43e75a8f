package event

import (
	"time"

	"github.com/viant/flow/internal/clock"
)

// Event types published by the flow runner.
const (
	TypeFlowStarted = "flowStarted"
	TypeTaskStarted = "taskStarted"
	TypeTaskDone    = "taskDone"
	TypeFlowDone    = "flowDone"
)

// Context identifies the flow and task an event refers to.
type Context struct {
	ExecutionID string `json:"executionID"`
	ContextID   string `json:"contextID"`
	Flow        string `json:"flow,omitempty"`
	EventType   string `json:"eventType"`
	TaskIndex   int    `json:"taskIndex"`
	TaskName    string `json:"taskName,omitempty"`
	Status      string `json:"status,omitempty"`
	Error       string `json:"error,omitempty"`
	TimeTakenMs int    `json:"timeTakenMs"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
