// Package idgen wraps the UUID generator so that it can be stubbed in tests.
// Identifiers produced here name contexts, flow executions and queued
// messages; callers should treat them as opaque strings.
package idgen
