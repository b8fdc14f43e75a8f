package approval

import (
	"time"
)

// Event envelope published on the service queue.
type Event struct {
	Topic string
	Data  interface{} // *Request | *Decision
}

// Standard event topics.
const (
	TopicRequestCreated  = "request.created"
	TopicDecisionCreated = "decision.created"
)

// Request asks for approval of a single task invocation.
type Request struct {
	ID        string                 `json:"id"`
	Task      string                 `json:"task"`
	State     map[string]interface{} `json:"state,omitempty"` // context snapshot at request time
	CreatedAt time.Time              `json:"createdAt"`
	ExpiresAt *time.Time             `json:"expiresAt,omitempty"`
}

// Decision represents approval decision
type Decision struct {
	ID        string    `json:"id"` // same as request.ID
	Approved  bool      `json:"approved"`
	Reason    string    `json:"reason,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}
