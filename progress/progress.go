package progress

// Indeterminate is passed to Start when the number of steps is not known
// upfront (for example a repeat-while loop).
const Indeterminate = -1

// Progress represents an indicator (spinner, progress bar, log line) bound to
// a flow execution.
//
// Start is called exactly once before the first task runs, Tick after each
// completed task and Stop exactly once on every exit path.
type Progress interface {
	Start(total int)
	Tick()
	Stop()
}

type noop struct{}

func (noop) Start(int) {}
func (noop) Tick()     {}
func (noop) Stop()     {}

// Noop is a Progress that ignores every call.
var Noop Progress = noop{}

// OrNoop returns p or Noop when p is nil.
func OrNoop(p Progress) Progress {
	if p == nil {
		return Noop
	}
	return p
}
