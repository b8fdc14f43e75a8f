package execution

// Status represents the lifecycle state of a flow execution.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	// StatusTimeout indicates the flow was aborted because its deadline passed.
	StatusTimeout Status = "timeout"
)

// IsTerminal reports whether the status is final.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusTimeout:
		return true
	}
	return false
}
