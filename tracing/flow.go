package tracing

import "context"

// Span attribute keys set by the flow runner.
const (
	AttrFlowName      = "flow.name"
	AttrFlowKind      = "flow.kind"
	AttrFlowExecution = "flow.execution_id"
	AttrFlowContext   = "flow.context_id"
	AttrFlowTasks     = "flow.tasks"
	AttrTaskIndex     = "task.index"
)

// StartFlow opens the root span of one flow execution, named "flow <kind>".
func StartFlow(ctx context.Context, kind, name, executionID, contextID string, tasks int) (context.Context, *Span) {
	ctx, span := StartSpan(ctx, "flow "+kind)
	span.WithAttributes(map[string]string{
		AttrFlowName:      name,
		AttrFlowKind:      kind,
		AttrFlowExecution: executionID,
		AttrFlowContext:   contextID,
	}).WithInt(AttrFlowTasks, tasks)
	return ctx, span
}

// StartTask opens a child span for one task invocation, named "task <name>".
func StartTask(ctx context.Context, index int, name string) (context.Context, *Span) {
	ctx, span := StartSpan(ctx, "task "+name)
	span.WithInt(AttrTaskIndex, index)
	return ctx, span
}
