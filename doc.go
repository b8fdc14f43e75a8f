// Package flow sequences asynchronous, side-effecting tasks that share a
// mutable context and report aggregate progress.
//
// The root package exposes a Service façade that wires the runtime with the
// ambient stack (logging, tracing, policies, events and execution history):
//
//	srv, _ := flow.NewFromConfig(cfg)
//	fc := srv.NewContext(nil)
//	err := srv.Series(fc, readInterface, readBinding, undefine, reload).
//		Timeout(30*time.Second).
//		Subscribe(ctx, flow.Callbacks{
//			Success: func(fc *execution.Context) { ... },
//			Error:   func(fc *execution.Context, err error) { ... },
//		})
//
// The runtime itself lives in runtime/flow and can be used without the façade.
package flow
