// Package progress defines the indicator whose lifecycle brackets a single
// flow execution. The flow runner is the only component that starts and stops
// a Progress; tasks may only read it.
//
// Three implementations are provided:
//
//   - Noop    – discards every call; the default when a caller has no indicator
//   - Tracker – keeps counters and verifies the start/stop bracket discipline
//   - Shared  – a process-wide indicator that only one flow may own at a time
package progress
