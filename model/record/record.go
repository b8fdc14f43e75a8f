package record

import "time"

// Kind names the composition operator that produced a record.
type Kind string

const (
	KindSeries   Kind = "series"
	KindParallel Kind = "parallel"
	KindWhilst   Kind = "whilst"
)

// Record captures the history of one flow execution.
type Record struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	ContextID string     `json:"contextId"`
	Kind      Kind       `json:"kind"`
	Status    string     `json:"status"`
	Error     string     `json:"error,omitempty"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Tasks     []*Task    `json:"tasks,omitempty"`
}

// Task captures one task invocation within a flow.
type Task struct {
	Index    int           `json:"index"`
	Name     string        `json:"name"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Failed reports whether the task returned an error.
func (t *Task) Failed() bool { return t.Error != "" }

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	if r.EndedAt != nil {
		endedAt := *r.EndedAt
		clone.EndedAt = &endedAt
	}
	if r.Tasks != nil {
		clone.Tasks = make([]*Task, len(r.Tasks))
		for i, task := range r.Tasks {
			taskCopy := *task
			clone.Tasks[i] = &taskCopy
		}
	}
	return &clone
}

// Duration returns the wall time of a finished record, or zero.
func (r *Record) Duration() time.Duration {
	if r.EndedAt == nil {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
