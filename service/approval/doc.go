// Package approval implements the optional human-in-the-loop approval layer.
// A flow task gated by a policy in ask mode is held until an explicit approve
// or reject decision is recorded.
package approval
