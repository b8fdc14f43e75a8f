// Package flow sequences asynchronous, side-effecting tasks against a shared
// execution.Context.
//
// A caller builds a Context, composes tasks with Series, Parallel or Whilst and
// starts the returned one-shot Execution with an Outcome:
//
//	fc := execution.NewContext(spinner)
//	err := flow.Series(fc, readInterface, readBinding, undefine, reload).
//		Timeout(30*time.Second).
//		Subscribe(ctx, flow.Callbacks{
//			Success: func(fc *execution.Context) { ... },
//			Error:   func(fc *execution.Context, err error) { ... },
//		})
//
// The runner owns the progress bracket: the Context's indicator is started
// once before the first task and stopped once on every exit path, before the
// Outcome fires. An Execution can be started only once; a second start fails
// with ErrAlreadyStarted and runs nothing.
package flow
