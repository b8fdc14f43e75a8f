// Package tracing integrates OpenTelemetry with the flow runner: one span per
// flow execution and one child span per task. Applications that never call
// Init keep the no-op global tracer provider.
package tracing
