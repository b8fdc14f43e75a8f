package approval

import (
	"context"
	"time"

	"github.com/viant/flow/internal/clock"
	"github.com/viant/flow/internal/idgen"
	"github.com/viant/flow/policy"
)

// DecisionFunc decides what to do with a pending request.
// Return (true,  "") to approve
//
//	(false, "…") to reject with reason.
type DecisionFunc func(r *Request) (approved bool, reason string)

// SelectiveFunc is like DecisionFunc but may leave a request pending by
// returning decide=false.
type SelectiveFunc func(r *Request) (decide, approved bool, reason string)

// AutoDecider starts a goroutine that polls ListPending and applies fn to
// every request.  It returns stop() – call it (or cancel ctx) to exit.
func AutoDecider(ctx context.Context, svc Service, fn DecisionFunc, interval time.Duration) (stop func()) {
	return autoDecide(ctx, svc, func(r *Request) (bool, bool, string) {
		ok, reason := fn(r)
		return true, ok, reason
	}, interval)
}

func autoDecide(ctx context.Context, svc Service, fn SelectiveFunc, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				reqs, _ := svc.ListPending(ctx)
				for _, r := range reqs {
					if decide, ok, reason := fn(r); decide {
						_, _ = svc.Decide(ctx, r.ID, ok, reason)
					}
				}
			}
		}
	}()
	return func() { close(done) }
}

// AutoApprove automatically approves all pending requests
func AutoApprove(ctx context.Context, svc Service, interval time.Duration) func() {
	return AutoDecider(ctx, svc, func(*Request) (bool, string) { return true, "" }, interval)
}

// AutoReject automatically rejects all pending requests with the given reason
func AutoReject(ctx context.Context, svc Service, reason string, interval time.Duration) func() {
	return AutoDecider(ctx, svc, func(*Request) (bool, string) { return false, reason }, interval)
}

// WaitForDecision waits up to timeout for request id to be decided.
func WaitForDecision(ctx context.Context, svc Service, id string, timeout time.Duration) (*Decision, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return svc.Await(ctx, id)
}

// AskFunc adapts svc to policy.AskFunc: every gated task files a request and
// blocks until it is decided. A zero timeout waits as long as the flow
// context allows; an expired wait counts as a rejection.
func AskFunc(svc Service, timeout time.Duration) policy.AskFunc {
	return func(ctx context.Context, task string, state map[string]interface{}, _ *policy.Policy) bool {
		r := &Request{ID: idgen.New(), Task: task, State: state, CreatedAt: clock.Now()}
		if timeout > 0 {
			expiresAt := r.CreatedAt.Add(timeout)
			r.ExpiresAt = &expiresAt
		}
		if err := svc.RequestApproval(ctx, r); err != nil {
			return false
		}
		decision, err := WaitForDecision(ctx, svc, r.ID, timeout)
		if err != nil {
			return false
		}
		return decision.Approved
	}
}

// PendingFilter selects pending requests.
type PendingFilter func(r *Request) bool

// WithTask selects requests for the named task.
func WithTask(task string) PendingFilter {
	return func(r *Request) bool { return r.Task == task }
}

// ListPending returns pending requests matching every filter.
func ListPending(ctx context.Context, svc Service, filters ...PendingFilter) ([]*Request, error) {
	all, err := svc.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	ret := make([]*Request, 0, len(all))
outer:
	for _, r := range all {
		for _, filter := range filters {
			if !filter(r) {
				continue outer
			}
		}
		ret = append(ret, r)
	}
	return ret, nil
}

// AutoExpire rejects requests whose ExpiresAt has passed.
func AutoExpire(ctx context.Context, svc Service, reason string, interval time.Duration) func() {
	return autoDecide(ctx, svc, func(r *Request) (bool, bool, string) {
		if r.ExpiresAt != nil && clock.Now().After(*r.ExpiresAt) {
			return true, false, reason
		}
		return false, false, ""
	}, interval)
}
